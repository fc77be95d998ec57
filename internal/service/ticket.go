package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/metrics"
	"github.com/deskhive/deskhive/internal/pagination"
	"github.com/deskhive/deskhive/internal/recommend"
	"github.com/deskhive/deskhive/internal/telemetry"
)

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// DefaultListLimit caps ticket listings when the caller does not ask for a
// specific page size.
const DefaultListLimit = 20

// TicketService handles the ticket lifecycle and recommendation requests.
// State transitions go through compare-and-set updates inside transactions,
// so concurrent actors cannot double-apply a transition.
type TicketService struct {
	ticketRepo    TicketRepositoryInterface
	knowledgeRepo KnowledgeRepositoryInterface
	txRunner      TxRunner
	ranker        *recommend.Ranker
	corpusLimit   int
	uuidGen       UUIDGenerator
}

// NewTicketService creates a new TicketService instance
func NewTicketService(
	ticketRepo TicketRepositoryInterface,
	knowledgeRepo KnowledgeRepositoryInterface,
	txRunner TxRunner,
	ranker *recommend.Ranker,
	corpusLimit int,
) *TicketService {
	return &TicketService{
		ticketRepo:    ticketRepo,
		knowledgeRepo: knowledgeRepo,
		txRunner:      txRunner,
		ranker:        ranker,
		corpusLimit:   corpusLimit,
		uuidGen:       &DefaultUUIDGenerator{},
	}
}

// NewTicketServiceWithUUIDGen creates a new TicketService with custom UUID generator (for testing)
func NewTicketServiceWithUUIDGen(
	ticketRepo TicketRepositoryInterface,
	knowledgeRepo KnowledgeRepositoryInterface,
	txRunner TxRunner,
	ranker *recommend.Ranker,
	corpusLimit int,
	uuidGen UUIDGenerator,
) *TicketService {
	s := NewTicketService(ticketRepo, knowledgeRepo, txRunner, ranker, corpusLimit)
	s.uuidGen = uuidGen
	return s
}

// CreateTicketInput represents the input for opening a ticket
type CreateTicketInput struct {
	Description string
	ContactInfo string
}

// ResolveInput represents the input for resolving a ticket
type ResolveInput struct {
	TicketID        string
	UsedKB          bool
	AcceptedKBID    string
	AppliedSolution string
}

// ResolveOutput reports the resolved ticket and whether a knowledge item was
// auto-learned from the applied solution.
type ResolveOutput struct {
	Ticket    *domain.Ticket
	AddedToKB bool
}

type ListTicketsInput struct {
	Cursor string
	Limit  int
}

// Create opens a new ticket on behalf of the acting client.
func (s *TicketService) Create(ctx context.Context, actor domain.Actor, input CreateTicketInput) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "TicketService.Create", telemetry.SpanAttributes{
		ActorID:   actor.UserID,
		Operation: "create",
	})
	defer span.End()

	if err := actor.Require(domain.CapabilityClient); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:          s.uuidGen.NewString(),
		Description: strings.TrimSpace(input.Description),
		ContactInfo: strings.TrimSpace(input.ContactInfo),
		Status:      domain.TicketStatusOpen,
		ClientID:    actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := domain.ValidateTicket(ticket); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	metrics.TicketTransitions.WithLabelValues(string(domain.TicketStatusOpen)).Inc()
	return ticket, nil
}

// GetByID retrieves a single ticket. Clients only see their own tickets;
// specialists and admins see all of them.
func (s *TicketService) GetByID(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapabilitySpecialist) && ticket.ClientID != actor.UserID {
		return nil, domain.ErrNotTicketOwner
	}
	return ticket, nil
}

// Assign moves an open ticket into work under the acting specialist. When two
// specialists race for the same ticket exactly one wins; the loser gets
// ErrTicketAlreadyInWork.
func (s *TicketService) Assign(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "TicketService.Assign", telemetry.SpanAttributes{
		TicketID:  ticketID,
		ActorID:   actor.UserID,
		Operation: "assign",
	})
	defer span.End()

	if err := actor.Require(domain.CapabilitySpecialist); err != nil {
		return nil, err
	}

	var ticket *domain.Ticket
	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		tickets := repos.Tickets()

		if _, err := tickets.GetByID(ctx, ticketID); err != nil {
			return err
		}

		ok, err := tickets.UpdateStatusIfCurrently(ctx, ticketID, domain.TicketStatusOpen, StatusUpdate{
			New:           domain.TicketStatusInWork,
			SetSpecialist: true,
			SpecialistID:  actor.UserID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTicketAlreadyInWork
		}

		ticket, err = tickets.GetByID(ctx, ticketID)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	metrics.TicketTransitions.WithLabelValues(string(domain.TicketStatusInWork)).Inc()
	return ticket, nil
}

// RequestRecommendations ranks the most used knowledge items against the
// ticket text and records the returned batch in the audit trail. The ranking
// itself never fails the request; a ticket with no usable matches simply
// comes back novel.
func (s *TicketService) RequestRecommendations(ctx context.Context, actor domain.Actor, ticketID string) (*recommend.Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "TicketService.RequestRecommendations", telemetry.SpanAttributes{
		TicketID:  ticketID,
		ActorID:   actor.UserID,
		Operation: "recommend",
	})
	defer span.End()

	if err := actor.Require(domain.CapabilitySpecialist); err != nil {
		return nil, err
	}

	var result recommend.Result
	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		ticket, err := repos.Tickets().GetByID(ctx, ticketID)
		if err != nil {
			return err
		}

		items, err := repos.Knowledge().TopByFrequency(ctx, s.corpusLimit)
		if err != nil {
			return err
		}

		result = s.ranker.Rank(ticket.Description, items, recommend.DefaultTopK)
		if len(result.Recommendations) == 0 {
			return nil
		}

		now := time.Now().UTC()
		batch := make([]*domain.Recommendation, 0, len(result.Recommendations))
		for _, rec := range result.Recommendations {
			batch = append(batch, &domain.Recommendation{
				ID:         s.uuidGen.NewString(),
				TicketID:   ticketID,
				KBItemID:   rec.KBItemID,
				Similarity: rec.SimilarityPercent,
				Rank:       rec.Rank,
				CreatedAt:  now,
			})
		}
		return repos.Recommendations().InsertBatch(ctx, batch)
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	metrics.RecommendationRequests.WithLabelValues(strconv.FormatBool(result.IsNovel)).Inc()
	metrics.MaxSimilarity.Observe(float64(result.MaxSimilarityPercent) / 100)
	return &result, nil
}

// Resolve moves an in-work ticket to done and feeds the outcome back into the
// knowledge base. When the specialist accepted a suggestion the item's usage
// counter grows and the audit rows for that pairing are marked accepted.
// Otherwise the applied solution is deduplicated against existing items and,
// if unseen, stored as a new auto-generated item.
func (s *TicketService) Resolve(ctx context.Context, actor domain.Actor, input ResolveInput) (*ResolveOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "TicketService.Resolve", telemetry.SpanAttributes{
		TicketID:  input.TicketID,
		ActorID:   actor.UserID,
		Operation: "resolve",
	})
	defer span.End()

	if err := actor.Require(domain.CapabilitySpecialist); err != nil {
		return nil, err
	}

	usedKB := input.UsedKB && input.AcceptedKBID != ""
	solution := strings.TrimSpace(input.AppliedSolution)
	if !usedKB && solution == "" {
		return nil, domain.ErrSolutionRequired
	}

	out := &ResolveOutput{}
	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		tickets := repos.Tickets()

		ticket, err := tickets.GetByID(ctx, input.TicketID)
		if err != nil {
			return err
		}

		ok, err := tickets.UpdateStatusIfCurrently(ctx, input.TicketID, domain.TicketStatusInWork, StatusUpdate{
			New: domain.TicketStatusDone,
		})
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTicketNotInWork
		}

		if usedKB {
			// A malformed id cannot reference any item; treat it like a
			// vanished one and leave the knowledge base untouched.
			if _, parseErr := uuid.Parse(input.AcceptedKBID); parseErr == nil {
				if err := repos.Knowledge().IncrementFrequency(ctx, input.AcceptedKBID); err != nil {
					return err
				}
				if err := repos.Recommendations().MarkAccepted(ctx, input.TicketID, input.AcceptedKBID); err != nil {
					return err
				}
			}
		} else {
			existing, err := repos.Knowledge().FindBySolutionSubstring(ctx, solution)
			if err != nil {
				return err
			}
			if existing == nil {
				item := domain.NewAutoGeneratedItem(s.uuidGen.NewString(), ticket.Description, solution, time.Now().UTC())
				if err := repos.Knowledge().Insert(ctx, item); err != nil {
					return err
				}
				out.AddedToKB = true
			}
		}

		out.Ticket, err = tickets.GetByID(ctx, input.TicketID)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	metrics.TicketTransitions.WithLabelValues(string(domain.TicketStatusDone)).Inc()
	if out.AddedToKB {
		metrics.AutoLearnedItems.Inc()
	}
	return out, nil
}

// Confirm lets the ticket's owner accept or reject a resolution. Acceptance
// closes the ticket; rejection sends it back to work with the specialist
// assignment cleared, so any specialist can pick it up again.
func (s *TicketService) Confirm(ctx context.Context, actor domain.Actor, ticketID string, confirmed bool) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "TicketService.Confirm", telemetry.SpanAttributes{
		TicketID:  ticketID,
		ActorID:   actor.UserID,
		Operation: "confirm",
	})
	defer span.End()

	if err := actor.Require(domain.CapabilityClient); err != nil {
		return nil, err
	}

	update := StatusUpdate{New: domain.TicketStatusClosed}
	if !confirmed {
		update = StatusUpdate{New: domain.TicketStatusInWork, SetSpecialist: true}
	}

	var ticket *domain.Ticket
	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		tickets := repos.Tickets()

		current, err := tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		// Only the client who opened the ticket can judge the fix;
		// admins get no override here.
		if current.ClientID != actor.UserID {
			return domain.ErrNotTicketOwner
		}

		ok, err := tickets.UpdateStatusIfCurrently(ctx, ticketID, domain.TicketStatusDone, update)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTicketNotDone
		}

		ticket, err = tickets.GetByID(ctx, ticketID)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	metrics.TicketTransitions.WithLabelValues(string(update.New)).Inc()
	return ticket, nil
}

// ListMine returns the acting client's tickets, newest first.
func (s *TicketService) ListMine(ctx context.Context, actor domain.Actor, input ListTicketsInput) (*TicketPageResult, error) {
	if err := actor.Require(domain.CapabilityClient); err != nil {
		return nil, err
	}
	cursor, limit, err := decodeListInput(input)
	if err != nil {
		return nil, err
	}
	return s.ticketRepo.ListByClient(ctx, actor.UserID, cursor, limit)
}

// ListOpen returns unassigned open tickets for specialists to pick from.
func (s *TicketService) ListOpen(ctx context.Context, actor domain.Actor, input ListTicketsInput) (*TicketPageResult, error) {
	if err := actor.Require(domain.CapabilitySpecialist); err != nil {
		return nil, err
	}
	cursor, limit, err := decodeListInput(input)
	if err != nil {
		return nil, err
	}
	return s.ticketRepo.ListByStatus(ctx, domain.TicketStatusOpen, cursor, limit)
}

// ListAssigned returns the tickets currently in work under the acting
// specialist.
func (s *TicketService) ListAssigned(ctx context.Context, actor domain.Actor, input ListTicketsInput) (*TicketPageResult, error) {
	if err := actor.Require(domain.CapabilitySpecialist); err != nil {
		return nil, err
	}
	cursor, limit, err := decodeListInput(input)
	if err != nil {
		return nil, err
	}
	return s.ticketRepo.ListBySpecialist(ctx, actor.UserID, domain.TicketStatusInWork, cursor, limit)
}

func decodeListInput(input ListTicketsInput) (*pagination.Cursor, int, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if input.Cursor == "" {
		return nil, limit, nil
	}
	cursor, err := pagination.DecodeCursor(input.Cursor)
	if err != nil {
		return nil, 0, domain.NewDomainError(domain.ErrCodeValidation, "invalid cursor")
	}
	return cursor, limit, nil
}
