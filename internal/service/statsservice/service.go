package statsservice

import (
	"context"
	"fmt"

	"bistroboss/internal/domain"
	"bistroboss/internal/pkg/logger"
)

// StatsRepository define os agregados que o painel administrativo consome.
type StatsRepository interface {
	EstimatedCount(ctx context.Context, table string) (int64, error)
	PaymentPrices(ctx context.Context) ([]domain.Price, error)
}

type Service struct {
	repo   StatsRepository
	logger logger.Logger
}

func NewService(repo StatsRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AdminStats calcula contagens e receita total. Preços não numéricos
// contribuem com zero para a receita.
func (s *Service) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	var stats domain.AdminStats
	var err error

	if stats.Users, err = s.repo.EstimatedCount(ctx, "users"); err != nil {
		return domain.AdminStats{}, err
	}
	if stats.Products, err = s.repo.EstimatedCount(ctx, "menu"); err != nil {
		return domain.AdminStats{}, err
	}
	if stats.Orders, err = s.repo.EstimatedCount(ctx, "payments"); err != nil {
		return domain.AdminStats{}, err
	}

	prices, err := s.repo.PaymentPrices(ctx)
	if err != nil {
		return domain.AdminStats{}, err
	}
	stats.Revenue = s.revenue(prices)

	return stats, nil
}

func (s *Service) revenue(prices []domain.Price) string {
	var total float64
	skipped := 0
	for _, p := range prices {
		v, ok := p.Float()
		if !ok {
			skipped++
			continue
		}
		total += v
	}
	if skipped > 0 {
		s.logger.Warn("Pagamentos com preço não numérico ignorados na receita.", map[string]interface{}{"count": skipped})
	}
	return fmt.Sprintf("%.2f", total)
}
