package paymentservice_test

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
	"bistroboss/internal/service/paymentservice"
)

// fakeCartStore simula o efeito do Commit: grava o pagamento e apaga só os
// itens que existem.
type fakeCartStore struct {
	carts    map[string]bool
	payments []domain.Payment
	err      error
}

func (f *fakeCartStore) Commit(_ context.Context, p domain.Payment) (domain.CommitResult, error) {
	if f.err != nil {
		return domain.CommitResult{}, f.err
	}
	f.payments = append(f.payments, p)
	var deleted int64
	for _, id := range p.CartItemIDs {
		if f.carts[id] {
			delete(f.carts, id)
			deleted++
		}
	}
	return domain.CommitResult{
		InsertResult: domain.InsertResult{Acknowledged: true, InsertedID: p.ID},
		DeleteResult: domain.DeleteResult{Acknowledged: true, DeletedCount: deleted},
	}, nil
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amount int64, currency, email string) (domain.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, email)
	return args.Get(0).(domain.PaymentIntent), args.Error(1)
}

func (m *MockGateway) RetrieveIntent(ctx context.Context, id string) (domain.PaymentIntent, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PaymentIntent), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

func TestCreatePaymentIntent_RoundsToMinorUnits(t *testing.T) {
	gw := new(MockGateway)
	svc := paymentservice.NewService(&fakeCartStore{}, gw, nil, paymentservice.Options{Currency: "brl"}, logger.NewLogger("debug"))
	gw.On("CreateIntent", mock.Anything, int64(1999), "brl", "ana@bistro.com").
		Return(domain.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)

	resp, err := svc.CreatePaymentIntent(context.Background(), "ana@bistro.com", domain.NewPrice(19.99))

	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	gw.AssertExpectations(t)
}

func TestCreatePaymentIntent_RejectsInvalidPrice(t *testing.T) {
	gw := new(MockGateway)
	svc := paymentservice.NewService(&fakeCartStore{}, gw, nil, paymentservice.Options{}, logger.NewLogger("debug"))

	for _, raw := range []string{`0`, `-5`, `"abc"`, `null`} {
		_, err := svc.CreatePaymentIntent(context.Background(), "ana@bistro.com", domain.PriceFromRaw([]byte(raw)))
		assert.IsType(t, &apperror.ValidationError{}, err, raw)
	}
	gw.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntent_GatewayFailure(t *testing.T) {
	gw := new(MockGateway)
	svc := paymentservice.NewService(&fakeCartStore{}, gw, nil, paymentservice.Options{}, logger.NewLogger("debug"))
	gw.On("CreateIntent", mock.Anything, int64(1000), "usd", "ana@bistro.com").
		Return(domain.PaymentIntent{}, errors.New("card_declined"))

	_, err := svc.CreatePaymentIntent(context.Background(), "ana@bistro.com", domain.NewPrice(10))

	assert.IsType(t, &apperror.GatewayError{}, err)
}

func TestCommit_DeletesListedCartItems(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	store := &fakeCartStore{carts: map[string]bool{a: true, b: true}}
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.Anything, "payment.recorded", mock.AnythingOfType("domain.PaymentRecordedEvent")).Return(nil)
	svc := paymentservice.NewService(store, new(MockGateway), pub, paymentservice.Options{}, logger.NewLogger("debug"))

	result, err := svc.Commit(context.Background(), "ana@bistro.com", domain.Payment{
		Price:       domain.NewPrice(35.5),
		CartItemIDs: []string{a, b},
	})

	require.NoError(t, err)
	assert.True(t, result.InsertResult.Acknowledged)
	assert.Equal(t, int64(2), result.DeleteResult.DeletedCount)
	assert.Empty(t, store.carts)
	require.Len(t, store.payments, 1)
	assert.Equal(t, "ana@bistro.com", store.payments[0].Email)
	assert.NotEmpty(t, store.payments[0].ID)
	assert.False(t, store.payments[0].Date.IsZero())
	pub.AssertExpectations(t)
}

func TestCommit_MissingCartItemIsSilentlySkipped(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	store := &fakeCartStore{carts: map[string]bool{a: true}}
	svc := paymentservice.NewService(store, new(MockGateway), nil, paymentservice.Options{}, logger.NewLogger("debug"))

	result, err := svc.Commit(context.Background(), "ana@bistro.com", domain.Payment{
		Price:       domain.NewPrice(10),
		CartItemIDs: []string{a, b},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeleteResult.DeletedCount)
	assert.NotContains(t, store.carts, a)
	assert.Len(t, store.payments, 1)
}

func TestCommit_Validation(t *testing.T) {
	store := &fakeCartStore{}
	svc := paymentservice.NewService(store, new(MockGateway), nil, paymentservice.Options{}, logger.NewLogger("debug"))

	for name, p := range map[string]domain.Payment{
		"sem itens":        {Price: domain.NewPrice(10)},
		"id inválido":      {Price: domain.NewPrice(10), CartItemIDs: []string{"abc"}},
		"preço não-número": {Price: domain.PriceFromRaw([]byte(`"dez"`)), CartItemIDs: []string{uuid.NewString()}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Commit(context.Background(), "ana@bistro.com", p)
			assert.IsType(t, &apperror.ValidationError{}, err)
		})
	}
	assert.Empty(t, store.payments)
}

func TestCommit_StoreFailureIsNotPublished(t *testing.T) {
	store := &fakeCartStore{err: apperror.NewDBError("falha", errors.New("timeout"))}
	pub := new(MockPublisher)
	svc := paymentservice.NewService(store, new(MockGateway), pub, paymentservice.Options{}, logger.NewLogger("debug"))

	_, err := svc.Commit(context.Background(), "ana@bistro.com", domain.Payment{
		Price:       domain.NewPrice(10),
		CartItemIDs: []string{uuid.NewString()},
	})

	assert.IsType(t, &apperror.InternalError{}, err)
	pub.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommit_PublishFailureDoesNotFailCommit(t *testing.T) {
	store := &fakeCartStore{carts: map[string]bool{}}
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))
	svc := paymentservice.NewService(store, new(MockGateway), pub, paymentservice.Options{}, logger.NewLogger("debug"))

	_, err := svc.Commit(context.Background(), "ana@bistro.com", domain.Payment{
		Price:       domain.NewPrice(10),
		CartItemIDs: []string{uuid.NewString()},
	})

	require.NoError(t, err)
	assert.Len(t, store.payments, 1)
}

func TestCommit_VerifyCharge(t *testing.T) {
	cases := []struct {
		name   string
		intent domain.PaymentIntent
		ok     bool
	}{
		{"confirmada", domain.PaymentIntent{Status: "succeeded", Amount: 1050}, true},
		{"pendente", domain.PaymentIntent{Status: "requires_payment_method", Amount: 1050}, false},
		{"valor diferente", domain.PaymentIntent{Status: "succeeded", Amount: 100}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeCartStore{carts: map[string]bool{}}
			gw := new(MockGateway)
			gw.On("RetrieveIntent", mock.Anything, "pi_9").Return(tc.intent, nil)
			svc := paymentservice.NewService(store, gw, nil, paymentservice.Options{VerifyCharge: true}, logger.NewLogger("debug"))

			_, err := svc.Commit(context.Background(), "ana@bistro.com", domain.Payment{
				TransactionID: "pi_9",
				Price:         domain.NewPrice(10.5),
				CartItemIDs:   []string{uuid.NewString()},
			})

			if tc.ok {
				require.NoError(t, err)
				assert.Len(t, store.payments, 1)
				return
			}
			assert.IsType(t, &apperror.ValidationError{}, err)
			assert.Empty(t, store.payments)
		})
	}
}
