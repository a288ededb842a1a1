package menuservice

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// MenuRepository define o contrato que este Serviço espera da persistência do cardápio.
type MenuRepository interface {
	FindAll(ctx context.Context) ([]domain.MenuItem, error)
	Insert(ctx context.Context, item domain.MenuItem) (domain.InsertResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

// ReviewRepository é a leitura das avaliações.
type ReviewRepository interface {
	FindAll(ctx context.Context) ([]domain.Review, error)
}

// Service implementa as operações de cardápio e avaliações.
type Service struct {
	menu    MenuRepository
	reviews ReviewRepository
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Cardápio.
func NewService(menu MenuRepository, reviews ReviewRepository, logger logger.Logger) *Service {
	return &Service{menu: menu, reviews: reviews, logger: logger}
}

func (s *Service) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menu.FindAll(ctx)
}

// AddMenuItem valida e grava um novo prato (rota exclusiva de admin).
func (s *Service) AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.InsertResult, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.InsertResult{}, apperror.NewValidationError("O nome do prato é obrigatório.")
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return domain.InsertResult{}, apperror.NewValidationError("O preço do prato não pode ser negativo.")
	}

	return s.menu.Insert(ctx, item)
}

func (s *Service) DeleteMenuItem(ctx context.Context, id string) (domain.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DeleteResult{}, apperror.NewValidationError("ID de prato inválido.")
	}
	return s.menu.Delete(ctx, id)
}

func (s *Service) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.FindAll(ctx)
}
