package service

import (
	"context"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/pagination"
)

// StatusUpdate describes a conditional ticket status transition. When
// SetSpecialist is true the specialist assignment is rewritten along with
// the status; an empty SpecialistID clears it.
type StatusUpdate struct {
	New           domain.TicketStatus
	SetSpecialist bool
	SpecialistID  string
}

// TicketPageResult is a single page of tickets with cursor metadata.
type TicketPageResult struct {
	Items      []*domain.Ticket
	NextCursor string
	HasMore    bool
}

type TicketRepositoryInterface interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	UpdateStatusIfCurrently(ctx context.Context, id string, expected domain.TicketStatus, update StatusUpdate) (bool, error)
	ListByClient(ctx context.Context, clientID string, cursor *pagination.Cursor, limit int) (*TicketPageResult, error)
	ListByStatus(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error)
	ListBySpecialist(ctx context.Context, specialistID string, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error)
}

type KnowledgeRepositoryInterface interface {
	Insert(ctx context.Context, item *domain.KnowledgeItem) error
	Get(ctx context.Context, id string) (*domain.KnowledgeItem, error)
	TopByFrequency(ctx context.Context, limit int) ([]*domain.KnowledgeItem, error)
	FindBySolutionSubstring(ctx context.Context, prefix string) (*domain.KnowledgeItem, error)
	IncrementFrequency(ctx context.Context, id string) error
	Stats(ctx context.Context) (total int, usage int, err error)
}

type RecommendationRepositoryInterface interface {
	InsertBatch(ctx context.Context, recs []*domain.Recommendation) error
	MarkAccepted(ctx context.Context, ticketID, kbItemID string) error
	ListByTicket(ctx context.Context, ticketID string) ([]*domain.Recommendation, error)
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountAll(ctx context.Context) (int, error)
}
