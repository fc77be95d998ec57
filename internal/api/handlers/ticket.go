package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deskhive/deskhive/internal/api"
	"github.com/deskhive/deskhive/internal/api/middleware"
	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/recommend"
	"github.com/deskhive/deskhive/internal/service"
)

type TicketService interface {
	Create(ctx context.Context, actor domain.Actor, input service.CreateTicketInput) (*domain.Ticket, error)
	GetByID(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error)
	Assign(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error)
	RequestRecommendations(ctx context.Context, actor domain.Actor, ticketID string) (*recommend.Result, error)
	Resolve(ctx context.Context, actor domain.Actor, input service.ResolveInput) (*service.ResolveOutput, error)
	Confirm(ctx context.Context, actor domain.Actor, ticketID string, confirmed bool) (*domain.Ticket, error)
	ListMine(ctx context.Context, actor domain.Actor, input service.ListTicketsInput) (*service.TicketPageResult, error)
	ListOpen(ctx context.Context, actor domain.Actor, input service.ListTicketsInput) (*service.TicketPageResult, error)
	ListAssigned(ctx context.Context, actor domain.Actor, input service.ListTicketsInput) (*service.TicketPageResult, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

type CreateTicketRequest struct {
	Description string `json:"description" validate:"required"`
	ContactInfo string `json:"contact_info"`
}

type ResolveTicketRequest struct {
	UsedKB          bool   `json:"used_kb"`
	AcceptedKBID    string `json:"accepted_kb_id"`
	AppliedSolution string `json:"applied_solution"`
}

type ConfirmTicketRequest struct {
	Confirmed *bool `json:"confirmed" validate:"required"`
}

type TicketResponse struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	ContactInfo  string `json:"contact_info,omitempty"`
	Status       string `json:"status"`
	StatusCode   int    `json:"status_code"`
	ClientID     string `json:"client_id"`
	SpecialistID string `json:"specialist_id,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type TicketPageResponse struct {
	Items      []*TicketResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type RecommendationResponse struct {
	KBItemID          string `json:"kb_item_id"`
	Rank              int    `json:"rank"`
	SimilarityPercent int    `json:"similarity_percent"`
	Problem           string `json:"problem"`
	Solution          string `json:"solution"`
}

type RecommendationsResponse struct {
	IsNovel              bool                      `json:"is_novel"`
	MaxSimilarityPercent int                       `json:"max_similarity_percent"`
	Recommendations      []*RecommendationResponse `json:"recommendations"`
}

type ResolveResponse struct {
	Ticket    *TicketResponse `json:"ticket"`
	AddedToKB bool            `json:"added_to_kb"`
}

func ticketToResponse(t *domain.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:           t.ID,
		Description:  t.Description,
		ContactInfo:  t.ContactInfo,
		Status:       string(t.Status),
		StatusCode:   t.Status.Code(),
		ClientID:     t.ClientID,
		SpecialistID: t.SpecialistID,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func pageToResponse(page *service.TicketPageResult) *TicketPageResponse {
	items := make([]*TicketResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, ticketToResponse(t))
	}
	return &TicketPageResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "description is required")
		return
	}

	ticket, err := h.svc.Create(r.Context(), actor, service.CreateTicketInput{
		Description: req.Description,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, ticketToResponse(ticket))
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticket, err := h.svc.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ticketToResponse(ticket))
}

func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ticket, err := h.svc.Assign(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ticketToResponse(ticket))
}

func (h *TicketHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.svc.RequestRecommendations(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := &RecommendationsResponse{
		IsNovel:              result.IsNovel,
		MaxSimilarityPercent: result.MaxSimilarityPercent,
		Recommendations:      make([]*RecommendationResponse, 0, len(result.Recommendations)),
	}
	for _, rec := range result.Recommendations {
		resp.Recommendations = append(resp.Recommendations, &RecommendationResponse{
			KBItemID:          rec.KBItemID,
			Rank:              rec.Rank,
			SimilarityPercent: rec.SimilarityPercent,
			Problem:           rec.Problem,
			Solution:          rec.Solution,
		})
	}

	api.Success(w, http.StatusOK, resp)
}

func (h *TicketHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ResolveTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Resolve(r.Context(), actor, service.ResolveInput{
		TicketID:        chi.URLParam(r, "id"),
		UsedKB:          req.UsedKB,
		AcceptedKBID:    req.AcceptedKBID,
		AppliedSolution: req.AppliedSolution,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, &ResolveResponse{
		Ticket:    ticketToResponse(out.Ticket),
		AddedToKB: out.AddedToKB,
	})
}

func (h *TicketHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ConfirmTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "confirmed is required")
		return
	}

	ticket, err := h.svc.Confirm(r.Context(), actor, chi.URLParam(r, "id"), *req.Confirmed)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ticketToResponse(ticket))
}

func (h *TicketHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListMine)
}

func (h *TicketHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListOpen)
}

func (h *TicketHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListAssigned)
}

func (h *TicketHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, domain.Actor, service.ListTicketsInput) (*service.TicketPageResult, error),
) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	input := service.ListTicketsInput{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			api.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		input.Limit = limit
	}

	page, err := fetch(r.Context(), actor, input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, pageToResponse(page))
}
