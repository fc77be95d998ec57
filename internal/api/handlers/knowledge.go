package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deskhive/deskhive/internal/api"
	"github.com/deskhive/deskhive/internal/api/middleware"
	"github.com/deskhive/deskhive/internal/domain"
)

type KnowledgeService interface {
	List(ctx context.Context, actor domain.Actor, limit int) ([]*domain.KnowledgeItem, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.KnowledgeItem, error)
}

type KnowledgeHandler struct {
	svc KnowledgeService
}

func NewKnowledgeHandler(svc KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type KnowledgeResponse struct {
	ID              string `json:"id"`
	Problem         string `json:"problem"`
	Solution        string `json:"solution"`
	Frequency       int    `json:"frequency"`
	IsAutoGenerated bool   `json:"is_auto_generated"`
	CreatedAt       string `json:"created_at"`
}

func knowledgeToResponse(k *domain.KnowledgeItem) *KnowledgeResponse {
	return &KnowledgeResponse{
		ID:              k.ID,
		Problem:         k.Problem,
		Solution:        k.Solution,
		Frequency:       k.Frequency,
		IsAutoGenerated: k.IsAutoGenerated,
		CreatedAt:       k.CreatedAt.Format(time.RFC3339),
	}
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			api.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := h.svc.List(r.Context(), actor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := make([]*KnowledgeResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, knowledgeToResponse(item))
	}
	api.Success(w, http.StatusOK, resp)
}

func (h *KnowledgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	item, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, knowledgeToResponse(item))
}
