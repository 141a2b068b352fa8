package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"takeout/entity"
	"takeout/payment"
	"takeout/pkg/logger"
	"takeout/repository"
	"takeout/services"
	"takeout/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cfg = Config{
	PaymentTimeout:        15 * time.Minute,
	DeliveryTimeout:       time.Hour,
	PaymentSweepInterval:  time.Minute,
	DeliverySweepInterval: 24 * time.Hour,
}

func newEngine(t *testing.T) (*services.OrderService, *testutil.Env) {
	t.Helper()
	env := testutil.NewEnv(t)
	svc := services.NewOrderService(env.DB,
		repository.NewOrderRepository(env.DB), repository.NewCartRepository(env.DB),
		repository.NewAddressBookRepository(env.DB), payment.NewSimulated(), nil, logger.Discard())
	return svc, env
}

func TestProcessTimeoutOrders(t *testing.T) {
	svc, env := newEngine(t)
	now := time.Now()

	stale := testutil.CreateOrder(t, env.DB, env.Customer.ID, entity.StatusPendingPayment, entity.PayUnpaid, now.Add(-20*time.Minute))
	fresh := testutil.CreateOrder(t, env.DB, env.Customer.ID, entity.StatusPendingPayment, entity.PayUnpaid, now.Add(-5*time.Minute))
	paid := testutil.CreateOrder(t, env.DB, env.Customer.ID, entity.StatusToBeConfirmed, entity.PayPaid, now.Add(-time.Hour))

	task := NewOrderTask(svc, nil, cfg, nil)
	res := task.ProcessTimeoutOrders(context.Background())
	assert.Equal(t, SweepResult{Selected: 1, Applied: 1}, res)

	got := testutil.ReloadOrder(t, env.DB, stale.ID)
	assert.Equal(t, entity.StatusCancelled, got.Status)
	assert.Equal(t, services.ReasonPaymentTimeout, got.CancelReason)
	assert.Equal(t, entity.PayUnpaid, got.PayStatus)
	assert.NotNil(t, got.CancelTime)
	assert.Zero(t, got.UpdatedBy)

	assert.Equal(t, entity.StatusPendingPayment, testutil.ReloadOrder(t, env.DB, fresh.ID).Status)
	assert.Equal(t, entity.StatusToBeConfirmed, testutil.ReloadOrder(t, env.DB, paid.ID).Status)

	// รอบถัดไปไม่มีอะไรให้ทำ
	assert.Equal(t, SweepResult{}, task.ProcessTimeoutOrders(context.Background()))
}

func TestProcessDeliveryOrders(t *testing.T) {
	svc, env := newEngine(t)
	now := time.Now()

	stuck := testutil.CreateOrder(t, env.DB, env.Customer.ID, entity.StatusDeliveryInProgress, entity.PayPaid, now.Add(-2*time.Hour))
	moving := testutil.CreateOrder(t, env.DB, env.Customer.ID, entity.StatusDeliveryInProgress, entity.PayPaid, now.Add(-10*time.Minute))

	res := NewOrderTask(svc, nil, cfg, nil).ProcessDeliveryOrders(context.Background())
	assert.Equal(t, 1, res.Applied)

	got := testutil.ReloadOrder(t, env.DB, stuck.ID)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.NotNil(t, got.DeliveryTime)
	assert.Equal(t, entity.StatusDeliveryInProgress, testutil.ReloadOrder(t, env.DB, moving.ID).Status)
}

type mockTransitions struct{ mock.Mock }

func (m *mockTransitions) ListStale(ctx context.Context, status entity.OrderStatus, before time.Time) ([]entity.Order, error) {
	args := m.Called(status)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Error(1)
}

func (m *mockTransitions) ApplyCancel(ctx context.Context, actor services.Actor, id uint, from entity.OrderStatus, reason string) error {
	return m.Called(actor, id, from, reason).Error(0)
}

func (m *mockTransitions) ApplyComplete(ctx context.Context, actor services.Actor, id uint, from entity.OrderStatus) error {
	return m.Called(actor, id, from).Error(0)
}

func TestSweep_PerOrderErrorsDoNotAbortBatch(t *testing.T) {
	m := new(mockTransitions)
	m.On("ListStale", entity.StatusPendingPayment).Return([]entity.Order{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	reason := services.ReasonPaymentTimeout
	m.On("ApplyCancel", services.SystemActor, uint(1), entity.StatusPendingPayment, reason).Return(errors.New("db hiccup"))
	m.On("ApplyCancel", services.SystemActor, uint(2), entity.StatusPendingPayment, reason).Return(services.ErrStaleOrderState)
	m.On("ApplyCancel", services.SystemActor, uint(3), entity.StatusPendingPayment, reason).Return(nil)

	res := NewOrderTask(m, nil, cfg, logger.Discard()).ProcessTimeoutOrders(context.Background())
	assert.Equal(t, SweepResult{Selected: 3, Applied: 1, Skipped: 1, Failed: 1}, res)
	m.AssertExpectations(t)
}

func TestSweep_ListFailure(t *testing.T) {
	m := new(mockTransitions)
	m.On("ListStale", entity.StatusDeliveryInProgress).Return(nil, errors.New("down"))

	res := NewOrderTask(m, nil, cfg, nil).ProcessDeliveryOrders(context.Background())
	assert.Equal(t, SweepResult{}, res)
	m.AssertNotCalled(t, "ApplyComplete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_SkipsWhenLockHeld(t *testing.T) {
	locker := NewLocalLocker()
	release, ok, err := locker.TryLock(context.Background(), "payment_timeout", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	task := NewOrderTask(new(mockTransitions), locker, cfg, nil)
	var runs int32
	run := func(context.Context) SweepResult { atomic.AddInt32(&runs, 1); return SweepResult{} }

	task.tick(context.Background(), "payment_timeout", time.Minute, run)
	assert.EqualValues(t, 0, atomic.LoadInt32(&runs))

	release()
	task.tick(context.Background(), "payment_timeout", time.Minute, run)
	assert.EqualValues(t, 1, atomic.LoadInt32(&runs))
}

type countingTransitions struct {
	pay, delivery atomic.Int32
}

func (c *countingTransitions) ListStale(_ context.Context, status entity.OrderStatus, _ time.Time) ([]entity.Order, error) {
	if status == entity.StatusPendingPayment {
		c.pay.Add(1)
	} else {
		c.delivery.Add(1)
	}
	return nil, nil
}

func (c *countingTransitions) ApplyCancel(context.Context, services.Actor, uint, entity.OrderStatus, string) error {
	return nil
}

func (c *countingTransitions) ApplyComplete(context.Context, services.Actor, uint, entity.OrderStatus) error {
	return nil
}

func TestStart_TicksUntilCancelled(t *testing.T) {
	c := &countingTransitions{}
	task := NewOrderTask(c, nil, Config{
		PaymentTimeout:        time.Minute,
		DeliveryTimeout:       time.Minute,
		PaymentSweepInterval:  10 * time.Millisecond,
		DeliverySweepInterval: 10 * time.Millisecond,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	task.Start(ctx)

	assert.Eventually(t, func() bool {
		return c.pay.Load() > 0 && c.delivery.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() { task.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tickers did not stop")
	}
}
