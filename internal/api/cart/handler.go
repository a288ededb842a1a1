package cart

import (
	"context"
	"net/http"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/middleware"
	"bistroboss/internal/pkg/respond"
)

// CartService define o contrato para o carrinho.
type CartService interface {
	ListForUser(ctx context.Context, authEmail, email string) ([]domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error)
	Remove(ctx context.Context, id string) (domain.DeleteResult, error)
}

type Handler struct {
	Service CartService
	Logger  logger.Logger
}

func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListCartHandler lida com a requisição GET /carts?email=.
// @Summary Lista o carrinho do usuário autenticado
// @Description O email da query deve ser o mesmo do token; sem email responde [].
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param email query string false "Email do dono do carrinho"
// @Success 200 {array} domain.CartItem
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse "Carrinho de outro usuário"
// @Router /carts [get]
func (h *Handler) ListCartHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError("claims ausentes"))
		return
	}

	items, err := h.Service.ListForUser(r.Context(), claims.Email, r.URL.Query().Get("email"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, items)
}

// AddCartItemHandler lida com a requisição POST /carts.
// @Summary Adiciona um item ao carrinho
// @Tags carts
// @Accept json
// @Produce json
// @Param item body domain.CartItem true "Item do carrinho"
// @Success 201 {object} domain.InsertResult
// @Failure 400 {object} domain.ErrorResponse
// @Router /carts [post]
func (h *Handler) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := respond.Decode(r, &item); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.Add(r.Context(), item)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusCreated, result)
}

// RemoveCartItemHandler lida com a requisição DELETE /carts/{id}.
// @Summary Remove um item do carrinho
// @Tags carts
// @Produce json
// @Param id path string true "ID do item (UUID)"
// @Success 200 {object} domain.DeleteResult
// @Failure 400 {object} domain.ErrorResponse
// @Router /carts/{id} [delete]
func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, result)
}
