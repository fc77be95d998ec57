package handlers

import (
	"context"
	"net/http"

	"github.com/deskhive/deskhive/internal/api"
	"github.com/deskhive/deskhive/internal/api/middleware"
	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/service"
)

type StatsService interface {
	Collect(ctx context.Context, actor domain.Actor) (*service.Stats, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

type StatsResponse struct {
	TicketsTotal   int `json:"tickets_total"`
	TicketsOpen    int `json:"tickets_open"`
	TicketsInWork  int `json:"tickets_in_work"`
	KnowledgeItems int `json:"knowledge_items"`
	KnowledgeUsage int `json:"knowledge_usage"`
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.svc.Collect(r.Context(), actor)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, &StatsResponse{
		TicketsTotal:   stats.TicketsTotal,
		TicketsOpen:    stats.TicketsOpen,
		TicketsInWork:  stats.TicketsInWork,
		KnowledgeItems: stats.KnowledgeItems,
		KnowledgeUsage: stats.KnowledgeUsage,
	})
}
