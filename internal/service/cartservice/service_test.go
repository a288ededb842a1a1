package cartservice_test

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
	"bistroboss/internal/service/cartservice"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) Insert(ctx context.Context, item domain.CartItem) (domain.InsertResult, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.InsertResult), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeleteResult), args.Error(1)
}

func TestListForUser_OwnCart(t *testing.T) {
	repo := new(MockCartRepository)
	svc := cartservice.NewService(repo, logger.NewLogger("debug"))
	items := []domain.CartItem{{ID: uuid.NewString(), Email: "ana@bistro.com", Name: "Risoto"}}
	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").Return(items, nil)

	got, err := svc.ListForUser(context.Background(), "ana@bistro.com", "ana@bistro.com")

	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestListForUser_OtherUsersCartIsForbidden(t *testing.T) {
	repo := new(MockCartRepository)
	svc := cartservice.NewService(repo, logger.NewLogger("debug"))

	got, err := svc.ListForUser(context.Background(), "intruso@bistro.com", "ana@bistro.com")

	assert.Nil(t, got)
	var forbidden *apperror.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "forbidden access", forbidden.Message())
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestListForUser_NoEmailIsEmpty(t *testing.T) {
	repo := new(MockCartRepository)
	svc := cartservice.NewService(repo, logger.NewLogger("debug"))

	got, err := svc.ListForUser(context.Background(), "ana@bistro.com", "")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAdd(t *testing.T) {
	repo := new(MockCartRepository)
	svc := cartservice.NewService(repo, logger.NewLogger("debug"))

	_, err := svc.Add(context.Background(), domain.CartItem{Email: "ana@bistro.com"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	item := domain.CartItem{Email: "ana@bistro.com", MenuItemID: "m1", Name: "Risoto", Price: 42}
	repo.On("Insert", mock.Anything, item).Return(domain.InsertResult{Acknowledged: true, InsertedID: "c1"}, nil)

	result, err := svc.Add(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "c1", result.InsertedID)
}

func TestRemove(t *testing.T) {
	repo := new(MockCartRepository)
	svc := cartservice.NewService(repo, logger.NewLogger("debug"))
	id := uuid.NewString()
	repo.On("Delete", mock.Anything, id).Return(domain.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil)

	result, err := svc.Remove(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, result.Acknowledged)

	_, err = svc.Remove(context.Background(), "x")
	assert.IsType(t, &apperror.ValidationError{}, err)
}
