package payment

import (
	"context"
	"net/http"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/middleware"
	"bistroboss/internal/pkg/respond"
)

// PaymentService define o contrato do checkout.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, email string, price domain.Price) (domain.ClientSecretResponse, error)
	Commit(ctx context.Context, authEmail string, payment domain.Payment) (domain.CommitResult, error)
}

type Handler struct {
	Service PaymentService
	Logger  logger.Logger
}

func NewHandler(svc PaymentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreatePaymentIntentHandler lida com a requisição POST /create-payment-intent.
// @Summary Cria a cobrança no gateway
// @Description Valor cobrado: round(price*100) na menor unidade da moeda.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.PaymentIntentRequest true "Preço total"
// @Success 200 {object} domain.ClientSecretResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse "Falha no gateway"
// @Router /create-payment-intent [post]
func (h *Handler) CreatePaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError("claims ausentes"))
		return
	}

	var req domain.PaymentIntentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.CreatePaymentIntent(r.Context(), claims.Email, req.Price)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, resp)
}

// CommitPaymentHandler lida com a requisição POST /payments.
// @Summary Registra o pagamento e limpa o carrinho
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body domain.Payment true "Registro do pagamento"
// @Success 200 {object} domain.CommitResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /payments [post]
func (h *Handler) CommitPaymentHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError("claims ausentes"))
		return
	}

	var p domain.Payment
	if err := respond.Decode(r, &p); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.Commit(r.Context(), claims.Email, p)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, result)
}
