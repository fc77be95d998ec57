package service

import (
	"context"

	"github.com/deskhive/deskhive/internal/domain"
)

// KnowledgeService exposes read access to the knowledge base.
type KnowledgeService struct {
	knowledgeRepo KnowledgeRepositoryInterface
}

func NewKnowledgeService(knowledgeRepo KnowledgeRepositoryInterface) *KnowledgeService {
	return &KnowledgeService{knowledgeRepo: knowledgeRepo}
}

// List returns knowledge items ordered by usage frequency, most used first.
func (s *KnowledgeService) List(ctx context.Context, actor domain.Actor, limit int) ([]*domain.KnowledgeItem, error) {
	if err := actor.Require(domain.CapabilityAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.knowledgeRepo.TopByFrequency(ctx, limit)
}

// Get returns a single knowledge item.
func (s *KnowledgeService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.KnowledgeItem, error) {
	if err := actor.Require(domain.CapabilityAdmin); err != nil {
		return nil, err
	}
	return s.knowledgeRepo.Get(ctx, id)
}
