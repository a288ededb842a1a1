package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UpdateResult), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func newService() (*userservice.UserService, *MockUserRepository, *MockTokenIssuer) {
	repo := new(MockUserRepository)
	tok := new(MockTokenIssuer)
	return userservice.NewService(repo, tok, logger.NewLogger("debug")), repo, tok
}

func TestRegister_NewUserIsInsertedAsCustomer(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()

	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").
		Return(domain.User{}, apperror.NewNotFoundError("usuário"))
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@bistro.com" && u.Role == domain.RoleCustomer
	})).Return(domain.User{ID: id, Email: "ana@bistro.com"}, nil)

	result, err := svc.Register(context.Background(), domain.UserRegistration{Name: "Ana", Email: "ana@bistro.com"})

	require.NoError(t, err)
	assert.True(t, result.Acknowledged)
	assert.Equal(t, id, result.InsertedID)
	assert.Empty(t, result.Message)
	repo.AssertExpectations(t)
}

func TestRegister_ExistingEmailDoesNotInsert(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").
		Return(domain.User{ID: uuid.NewString(), Email: "ana@bistro.com"}, nil)

	result, err := svc.Register(context.Background(), domain.UserRegistration{Email: "ana@bistro.com"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgUserExists, result.Message)
	assert.False(t, result.Acknowledged)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegister_ConcurrentDuplicateReportedAsExisting(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").
		Return(domain.User{}, apperror.NewNotFoundError("usuário"))
	repo.On("Insert", mock.Anything, mock.Anything).
		Return(domain.User{}, apperror.NewConflictError("email em uso"))

	result, err := svc.Register(context.Background(), domain.UserRegistration{Email: "ana@bistro.com"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgUserExists, result.Message)
}

func TestRegister_Validation(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "   "})

	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegister_StoreFailurePropagates(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").
		Return(domain.User{}, apperror.NewDBError("falha", errors.New("conn refused")))

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "ana@bistro.com"})

	assert.IsType(t, &apperror.InternalError{}, err)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		name      string
		authEmail string
		user      domain.User
		err       error
		want      bool
	}{
		{"admin", "boss@bistro.com", domain.User{Role: domain.RoleAdmin}, nil, true},
		{"cliente", "boss@bistro.com", domain.User{Role: domain.RoleCustomer}, nil, false},
		{"inexistente", "boss@bistro.com", domain.User{}, apperror.NewNotFoundError("usuário"), false},
		{"outro email", "intruso@bistro.com", domain.User{}, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newService()
			repo.On("FindByEmail", mock.Anything, "boss@bistro.com").Return(tc.user, tc.err)

			check, err := svc.IsAdmin(context.Background(), tc.authEmail, "boss@bistro.com")

			require.NoError(t, err)
			assert.Equal(t, tc.want, check.Admin)
			if tc.authEmail != "boss@bistro.com" {
				repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPromote(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()
	repo.On("PromoteToAdmin", mock.Anything, id).
		Return(domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)

	result, err := svc.Promote(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)

	_, err = svc.Promote(context.Background(), "nao-e-uuid")
	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNumberOfCalls(t, "PromoteToAdmin", 1)
}

func TestPromoteByEmail(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()
	repo.On("FindByEmail", mock.Anything, "ana@bistro.com").Return(domain.User{ID: id}, nil)
	repo.On("PromoteToAdmin", mock.Anything, id).
		Return(domain.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil)

	result, err := svc.PromoteByEmail(context.Background(), "ana@bistro.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	repo.AssertExpectations(t)
}

func TestIssueToken_TrimsEmail(t *testing.T) {
	svc, _, tok := newService()
	tok.On("Issue", "ana@bistro.com").Return("jwt", nil)

	got, err := svc.IssueToken(" ana@bistro.com ")

	require.NoError(t, err)
	assert.Equal(t, "jwt", got)
	tok.AssertExpectations(t)
}
