package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/lifecycle"
	"github.com/nikolayk812/cartcheckout/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupService(t *testing.T, orders ...domain.Order) (*lifecycle.Service, *repository.MemoryOrder) {
	t.Helper()

	repo := repository.NewMemoryOrder()
	for _, o := range orders {
		require.NoError(t, repo.SaveOrder(t.Context(), o))
	}

	return lifecycle.NewService(repo, time.Second, zaptest.NewLogger(t)), repo
}

func TestService_MarkDelivered(t *testing.T) {
	order := randomOrder(domain.OrderStatusProcessing)
	svc, repo := setupService(t, order)

	delivered, err := svc.MarkDelivered(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)

	stored, err := repo.GetOrder(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, stored.Status)
}

func TestService_CancelThenDeliver(t *testing.T) {
	order := randomOrder(domain.OrderStatusProcessing)
	svc, _ := setupService(t, order)

	cancelled, err := svc.RequestCancellation(t.Context(), lifecycle.ConfirmCancellation(order.ID, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	_, err = svc.MarkDelivered(t.Context(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := svc.Get(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	assert.Nil(t, stored.DeliveredAt)
}

func TestService_RequestCancellation_Unconfirmed(t *testing.T) {
	order := randomOrder(domain.OrderStatusProcessing)
	svc, _ := setupService(t, order)

	_, err := svc.RequestCancellation(t.Context(), lifecycle.Confirmation{})
	require.ErrorIs(t, err, domain.ErrCancellationNotConfirmed)

	stored, err := svc.Get(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, stored.Status)
}

func TestService_OrderNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.MarkDelivered(t.Context(), uuid.MustParse(gofakeit.UUID()))
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.False(t, errors.Is(err, domain.ErrExternalUnavailable))
}

func TestService_ConcurrentCancellation(t *testing.T) {
	order := randomOrder(domain.OrderStatusProcessing)
	svc, _ := setupService(t, order)

	const attempts = 10

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.RequestCancellation(context.Background(), lifecycle.ConfirmCancellation(order.ID, time.Now()))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range failures {
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

type unavailableRepo struct {
	*repository.MemoryOrder
}

func (unavailableRepo) UpdateStatus(context.Context, uuid.UUID, domain.OrderStatus, domain.OrderStatus, time.Time) error {
	return errors.New("connection reset by peer")
}

func TestService_PersistFailureIsExternal(t *testing.T) {
	order := randomOrder(domain.OrderStatusProcessing)
	mem := repository.NewMemoryOrder()
	require.NoError(t, mem.SaveOrder(t.Context(), order))

	svc := lifecycle.NewService(unavailableRepo{mem}, time.Second, zaptest.NewLogger(t))

	_, err := svc.MarkDelivered(t.Context(), order.ID)
	require.ErrorIs(t, err, domain.ErrExternalUnavailable)

	stored, err := mem.GetOrder(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, stored.Status)
}
