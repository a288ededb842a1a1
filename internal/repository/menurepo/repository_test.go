package menurepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/repository/menurepo"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Com cache quente o banco não é consultado (DB nil).
func TestFindAll_ServedFromCache(t *testing.T) {
	c := new(MockCache)
	c.On("Get", mock.Anything, "menu:all").
		Return(`[{"id":"m1","name":"Risoto","recipe":"","image":"","category":"main","price":42.5}]`, nil)
	repo := menurepo.NewMenuRepository(nil, c, time.Second, time.Minute, logger.NewLogger("debug"))

	items, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Risoto", items[0].Name)
	assert.Equal(t, 42.5, items[0].Price)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
