package menu

import (
	"context"
	"net/http"

	"bistroboss/internal/domain"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/respond"
)

// MenuService define o contrato para cardápio e avaliações.
type MenuService interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.InsertResult, error)
	DeleteMenuItem(ctx context.Context, id string) (domain.DeleteResult, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
}

type Handler struct {
	Service MenuService
	Logger  logger.Logger
}

func NewHandler(svc MenuService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListMenuHandler lida com a requisição GET /menu.
// @Summary Lista o cardápio
// @Tags menu
// @Produce json
// @Success 200 {array} domain.MenuItem
// @Router /menu [get]
func (h *Handler) ListMenuHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListMenu(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, items)
}

// AddMenuItemHandler lida com a requisição POST /menu.
// @Summary Adiciona um prato ao cardápio
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body domain.MenuItem true "Prato"
// @Success 201 {object} domain.InsertResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /menu [post]
func (h *Handler) AddMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := respond.Decode(r, &item); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.AddMenuItem(r.Context(), item)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusCreated, result)
}

// DeleteMenuItemHandler lida com a requisição DELETE /menu/{id}.
// @Summary Remove um prato do cardápio
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do prato (UUID)"
// @Success 200 {object} domain.DeleteResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /menu/{id} [delete]
func (h *Handler) DeleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.DeleteMenuItem(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, result)
}

// ListReviewsHandler lida com a requisição GET /reviews.
// @Summary Lista as avaliações
// @Tags reviews
// @Produce json
// @Success 200 {array} domain.Review
// @Router /reviews [get]
func (h *Handler) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListReviews(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, reviews)
}
