package statsservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/service/statsservice"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) EstimatedCount(ctx context.Context, table string) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) PaymentPrices(ctx context.Context) ([]domain.Price, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Price), args.Error(1)
}

func prices(raws ...string) []domain.Price {
	out := make([]domain.Price, 0, len(raws))
	for _, r := range raws {
		out = append(out, domain.PriceFromRaw([]byte(r)))
	}
	return out
}

func newRepo(p []domain.Price) *MockStatsRepository {
	repo := new(MockStatsRepository)
	repo.On("EstimatedCount", mock.Anything, "users").Return(int64(3), nil)
	repo.On("EstimatedCount", mock.Anything, "menu").Return(int64(12), nil)
	repo.On("EstimatedCount", mock.Anything, "payments").Return(int64(len(p)), nil)
	repo.On("PaymentPrices", mock.Anything).Return(p, nil)
	return repo
}

func TestAdminStats_MixedPriceTypes(t *testing.T) {
	repo := newRepo(prices(`10`, `"20.5"`, `5`))
	svc := statsservice.NewService(repo, logger.NewLogger("debug"))

	stats, err := svc.AdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.AdminStats{Users: 3, Products: 12, Orders: 3, Revenue: "35.50"}, stats)
	repo.AssertExpectations(t)
}

func TestAdminStats_UncoerciblePriceCountsZero(t *testing.T) {
	repo := newRepo(prices(`10`, `null`, `"abc"`, `{"v":1}`, `0.5`))
	svc := statsservice.NewService(repo, logger.NewLogger("debug"))

	stats, err := svc.AdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "10.50", stats.Revenue)
	assert.Equal(t, int64(5), stats.Orders)
}

func TestAdminStats_NoPayments(t *testing.T) {
	svc := statsservice.NewService(newRepo(prices()), logger.NewLogger("debug"))

	stats, err := svc.AdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.Revenue)
}

func TestAdminStats_StoreFailure(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("EstimatedCount", mock.Anything, "users").
		Return(int64(0), apperror.NewDBError("falha", errors.New("timeout")))
	svc := statsservice.NewService(repo, logger.NewLogger("debug"))

	_, err := svc.AdminStats(context.Background())

	assert.IsType(t, &apperror.InternalError{}, err)
	repo.AssertNotCalled(t, "PaymentPrices", mock.Anything)
}
