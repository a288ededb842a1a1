package menuservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/service/menuservice"
)

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Insert(ctx context.Context, item domain.MenuItem) (domain.InsertResult, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.InsertResult), args.Error(1)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeleteResult), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func TestListMenuAndReviews(t *testing.T) {
	menu, reviews := new(MockMenuRepository), new(MockReviewRepository)
	svc := menuservice.NewService(menu, reviews, logger.NewLogger("debug"))

	menu.On("FindAll", mock.Anything).Return([]domain.MenuItem{{Name: "Risoto", Price: 42}}, nil)
	reviews.On("FindAll", mock.Anything).Return([]domain.Review{{Name: "Ana", Rating: 5}}, nil)

	items, err := svc.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	rv, err := svc.ListReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5.0, rv[0].Rating)
}

func TestAddMenuItem_Validation(t *testing.T) {
	menu := new(MockMenuRepository)
	svc := menuservice.NewService(menu, new(MockReviewRepository), logger.NewLogger("debug"))

	for name, item := range map[string]domain.MenuItem{
		"sem nome":       {Name: "  ", Price: 10},
		"preço negativo": {Name: "Salada", Price: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddMenuItem(context.Background(), item)
			assert.IsType(t, &apperror.ValidationError{}, err)
		})
	}
	menu.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAddMenuItem_Success(t *testing.T) {
	menu := new(MockMenuRepository)
	svc := menuservice.NewService(menu, new(MockReviewRepository), logger.NewLogger("debug"))
	id := uuid.NewString()

	menu.On("Insert", mock.Anything, domain.MenuItem{Name: "Salada", Category: "salad"}).
		Return(domain.InsertResult{Acknowledged: true, InsertedID: id}, nil)

	result, err := svc.AddMenuItem(context.Background(), domain.MenuItem{Name: " Salada ", Category: "salad"})

	require.NoError(t, err)
	assert.Equal(t, id, result.InsertedID)
	menu.AssertExpectations(t)
}

func TestDeleteMenuItem(t *testing.T) {
	menu := new(MockMenuRepository)
	svc := menuservice.NewService(menu, new(MockReviewRepository), logger.NewLogger("debug"))
	id := uuid.NewString()
	menu.On("Delete", mock.Anything, id).Return(domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)

	result, err := svc.DeleteMenuItem(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)

	_, err = svc.DeleteMenuItem(context.Background(), "42")
	assert.IsType(t, &apperror.ValidationError{}, err)
	menu.AssertNumberOfCalls(t, "Delete", 1)
}
