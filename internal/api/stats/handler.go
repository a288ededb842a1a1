package stats

import (
	"context"
	"net/http"

	"bistroboss/internal/domain"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/respond"
)

type StatsService interface {
	AdminStats(ctx context.Context) (domain.AdminStats, error)
}

type Handler struct {
	Service StatsService
	Logger  logger.Logger
}

func NewHandler(svc StatsService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AdminStatsHandler lida com a requisição GET /admin-stats.
// @Summary Resumo do painel administrativo
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminStats
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin-stats [get]
func (h *Handler) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.AdminStats(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, stats)
}
