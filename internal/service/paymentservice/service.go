package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// PaymentRoutingKey é a routing key do evento publicado após o commit.
const PaymentRoutingKey = "payment.recorded"

// PaymentRepository grava o pagamento e limpa o carrinho de forma atômica.
type PaymentRepository interface {
	Commit(ctx context.Context, payment domain.Payment) (domain.CommitResult, error)
}

// Gateway é o Payment Processor Adapter (internal/pkg/gateway).
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, email string) (domain.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (domain.PaymentIntent, error)
}

// EventPublisher publica eventos de domínio (internal/pkg/mq). Pode ser nil.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Options são os parâmetros de configuração do checkout.
type Options struct {
	Currency     string
	VerifyCharge bool
}

type Service struct {
	repo      PaymentRepository
	gateway   Gateway
	publisher EventPublisher
	opts      Options
	logger    logger.Logger
	now       func() time.Time
}

func NewService(repo PaymentRepository, gateway Gateway, publisher EventPublisher, opts Options, logger logger.Logger) *Service {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	return &Service{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// CreatePaymentIntent abre a cobrança no gateway para round(price*100)
// centavos e devolve o segredo de confirmação do cliente.
func (s *Service) CreatePaymentIntent(ctx context.Context, email string, price domain.Price) (domain.ClientSecretResponse, error) {
	amount, ok := price.MinorUnits()
	if !ok || amount <= 0 {
		return domain.ClientSecretResponse{}, apperror.NewValidationError("O preço deve ser um número positivo.")
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, s.opts.Currency, email)
	if err != nil {
		s.logger.Error("Falha ao criar payment intent.", err)
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return domain.ClientSecretResponse{}, err
		}
		return domain.ClientSecretResponse{}, apperror.NewGatewayError("create payment intent", err)
	}

	s.logger.Info("Payment intent criado.", map[string]interface{}{
		"intent_id": intent.ID,
		"amount":    amount,
		"currency":  s.opts.Currency,
		"email":     email,
	})
	return domain.ClientSecretResponse{ClientSecret: intent.ClientSecret}, nil
}

// Commit registra o pagamento e remove do carrinho os itens pagos.
// A inserção sempre precede a remoção; ambas correm na mesma transação.
func (s *Service) Commit(ctx context.Context, authEmail string, payment domain.Payment) (domain.CommitResult, error) {
	if err := validate(payment); err != nil {
		return domain.CommitResult{}, err
	}

	if strings.TrimSpace(payment.Email) == "" {
		payment.Email = authEmail
	} else if payment.Email != authEmail {
		s.logger.Warn("Pagamento com email diferente do autenticado.", map[string]interface{}{
			"auth_email": authEmail,
			"email":      payment.Email,
		})
	}

	if s.opts.VerifyCharge {
		if err := s.verifyCharge(ctx, payment); err != nil {
			return domain.CommitResult{}, err
		}
	}

	payment.ID = uuid.NewString()
	if payment.Date.IsZero() {
		payment.Date = s.now().UTC()
	}

	result, err := s.repo.Commit(ctx, payment)
	if err != nil {
		return domain.CommitResult{}, err
	}

	s.publishRecorded(ctx, payment, result)
	return result, nil
}

func validate(payment domain.Payment) error {
	if len(payment.CartItemIDs) == 0 {
		return apperror.NewValidationError("cartItemIds não pode ser vazio.")
	}
	for _, id := range payment.CartItemIDs {
		if _, err := uuid.Parse(id); err != nil {
			return apperror.NewValidationError(fmt.Sprintf("ID de item do carrinho inválido: %q", id))
		}
	}
	if _, ok := payment.Price.Float(); !ok {
		return apperror.NewValidationError("O preço do pagamento deve ser numérico.")
	}
	return nil
}

// verifyCharge confere no gateway que a cobrança foi confirmada e tem o valor
// declarado no registro.
func (s *Service) verifyCharge(ctx context.Context, payment domain.Payment) error {
	if payment.TransactionID == "" {
		return apperror.NewValidationError("transactionId é obrigatório.")
	}

	intent, err := s.gateway.RetrieveIntent(ctx, payment.TransactionID)
	if err != nil {
		s.logger.Error("Falha ao consultar cobrança no gateway.", err)
		return apperror.NewGatewayError("retrieve payment intent", err)
	}

	amount, _ := payment.Price.MinorUnits()
	if intent.Status != domain.PaymentIntentStatusSucceeded || intent.Amount != amount {
		s.logger.Warn("Cobrança não confere com o pagamento.", map[string]interface{}{
			"transaction_id": payment.TransactionID,
			"status":         intent.Status,
			"intent_amount":  intent.Amount,
			"amount":         amount,
		})
		return apperror.NewValidationError("A cobrança informada não foi confirmada.")
	}
	return nil
}

func (s *Service) publishRecorded(ctx context.Context, payment domain.Payment, result domain.CommitResult) {
	if s.publisher == nil {
		return
	}

	event := domain.PaymentRecordedEvent{
		Event:       PaymentRoutingKey,
		Version:     1,
		OccurredAt:  s.now().UTC(),
		PaymentID:   payment.ID,
		Email:       payment.Email,
		Price:       payment.Price,
		CartItemIDs: payment.CartItemIDs,
		Deleted:     result.DeleteResult.DeletedCount,
	}
	if err := s.publisher.PublishJSON(ctx, PaymentRoutingKey, event); err != nil {
		s.logger.Warn("Falha ao publicar evento de pagamento.", map[string]interface{}{
			"payment_id": payment.ID,
			"error":      err.Error(),
		})
	}
}
