package cartservice

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// CartRepository define o contrato que este Serviço espera do Cart Store.
type CartRepository interface {
	FindByEmail(ctx context.Context, email string) ([]domain.CartItem, error)
	Insert(ctx context.Context, item domain.CartItem) (domain.InsertResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type Service struct {
	repo   CartRepository
	logger logger.Logger
}

func NewService(repo CartRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListForUser devolve o carrinho de email. O carrinho é dado privado: pedir
// o de outro usuário é Forbidden, não uma lista vazia.
func (s *Service) ListForUser(ctx context.Context, authEmail, email string) ([]domain.CartItem, error) {
	if email == "" {
		return []domain.CartItem{}, nil
	}
	if email != authEmail {
		s.logger.Warn("Leitura de carrinho de outro usuário negada.", map[string]interface{}{
			"auth_email": authEmail,
			"email":      email,
		})
		return nil, apperror.NewForbiddenError(apperror.MsgForbiddenAccess)
	}
	return s.repo.FindByEmail(ctx, email)
}

// Add coloca um prato no carrinho.
func (s *Service) Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error) {
	item.Email = strings.TrimSpace(item.Email)
	if item.Email == "" || strings.TrimSpace(item.MenuItemID) == "" {
		return domain.InsertResult{}, apperror.NewValidationError("Email e menuItemId são obrigatórios.")
	}
	return s.repo.Insert(ctx, item)
}

// Remove apaga uma linha do carrinho pelo ID.
func (s *Service) Remove(ctx context.Context, id string) (domain.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DeleteResult{}, apperror.NewValidationError("ID de item do carrinho inválido.")
	}
	return s.repo.Delete(ctx, id)
}
