package service

import (
	"context"

	"github.com/deskhive/deskhive/internal/domain"
)

// Stats is a point-in-time snapshot of the system's workload.
type Stats struct {
	TicketsTotal   int
	TicketsOpen    int
	TicketsInWork  int
	KnowledgeItems int
	KnowledgeUsage int
}

// StatsService aggregates counters across tickets and the knowledge base.
type StatsService struct {
	ticketRepo    TicketRepositoryInterface
	knowledgeRepo KnowledgeRepositoryInterface
}

func NewStatsService(ticketRepo TicketRepositoryInterface, knowledgeRepo KnowledgeRepositoryInterface) *StatsService {
	return &StatsService{ticketRepo: ticketRepo, knowledgeRepo: knowledgeRepo}
}

// Collect gathers the snapshot for the admin endpoint.
func (s *StatsService) Collect(ctx context.Context, actor domain.Actor) (*Stats, error) {
	if err := actor.Require(domain.CapabilityAdmin); err != nil {
		return nil, err
	}
	return s.Snapshot(ctx)
}

// Snapshot gathers the counters without a permission check, for internal
// callers like the periodic stats worker.
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	total, err := s.ticketRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.ticketRepo.CountByStatus(ctx, domain.TicketStatusOpen)
	if err != nil {
		return nil, err
	}
	inWork, err := s.ticketRepo.CountByStatus(ctx, domain.TicketStatusInWork)
	if err != nil {
		return nil, err
	}
	items, usage, err := s.knowledgeRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TicketsTotal:   total,
		TicketsOpen:    open,
		TicketsInWork:  inWork,
		KnowledgeItems: items,
		KnowledgeUsage: usage,
	}, nil
}
