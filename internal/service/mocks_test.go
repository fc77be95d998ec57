package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/pagination"
)

// MockTicketRepository is a mock implementation of TicketRepositoryInterface
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateStatusIfCurrently(ctx context.Context, id string, expected domain.TicketStatus, update StatusUpdate) (bool, error) {
	args := m.Called(ctx, id, expected, update)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) ListByClient(ctx context.Context, clientID string, cursor *pagination.Cursor, limit int) (*TicketPageResult, error) {
	args := m.Called(ctx, clientID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketPageResult), args.Error(1)
}

func (m *MockTicketRepository) ListByStatus(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error) {
	args := m.Called(ctx, status, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketPageResult), args.Error(1)
}

func (m *MockTicketRepository) ListBySpecialist(ctx context.Context, specialistID string, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error) {
	args := m.Called(ctx, specialistID, status, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketPageResult), args.Error(1)
}

func (m *MockTicketRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// MockKnowledgeRepository is a mock implementation of KnowledgeRepositoryInterface
type MockKnowledgeRepository struct {
	mock.Mock
}

func (m *MockKnowledgeRepository) Insert(ctx context.Context, item *domain.KnowledgeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockKnowledgeRepository) Get(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) TopByFrequency(ctx context.Context, limit int) ([]*domain.KnowledgeItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) FindBySolutionSubstring(ctx context.Context, text string) (*domain.KnowledgeItem, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeItem), args.Error(1)
}

func (m *MockKnowledgeRepository) IncrementFrequency(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockKnowledgeRepository) Stats(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockRecommendationRepository is a mock implementation of RecommendationRepositoryInterface
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) InsertBatch(ctx context.Context, recs []*domain.Recommendation) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockRecommendationRepository) MarkAccepted(ctx context.Context, ticketID, kbItemID string) error {
	args := m.Called(ctx, ticketID, kbItemID)
	return args.Error(0)
}

func (m *MockRecommendationRepository) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Recommendation, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recommendation), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockUUIDGenerator returns a scripted sequence of IDs
type MockUUIDGenerator struct {
	callCount int
	uuids     []string
}

func NewMockUUIDGenerator(uuids ...string) *MockUUIDGenerator {
	return &MockUUIDGenerator{uuids: uuids}
}

func (m *MockUUIDGenerator) NewString() string {
	if m.callCount < len(m.uuids) {
		id := m.uuids[m.callCount]
		m.callCount++
		return id
	}
	return "default-uuid"
}
