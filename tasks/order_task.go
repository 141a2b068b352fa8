package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"takeout/entity"
	"takeout/pkg/logger"
	"takeout/services"
)

// Transitions is the part of the order engine the sweeps drive.
type Transitions interface {
	ListStale(ctx context.Context, status entity.OrderStatus, before time.Time) ([]entity.Order, error)
	ApplyCancel(ctx context.Context, actor services.Actor, orderID uint, from entity.OrderStatus, reason string) error
	ApplyComplete(ctx context.Context, actor services.Actor, orderID uint, from entity.OrderStatus) error
}

type Config struct {
	PaymentTimeout        time.Duration
	DeliveryTimeout       time.Duration
	PaymentSweepInterval  time.Duration
	DeliverySweepInterval time.Duration
}

// SweepResult นับผลของ tick หนึ่งรอบ
type SweepResult struct {
	Selected int
	Applied  int
	Skipped  int // มีคนอื่นเปลี่ยนสถานะไปก่อน
	Failed   int
}

type OrderTask struct {
	Orders Transitions
	Locker Locker
	Log    *slog.Logger
	Cfg    Config
	Now    func() time.Time

	wg sync.WaitGroup
}

func NewOrderTask(orders Transitions, locker Locker, cfg Config, log *slog.Logger) *OrderTask {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OrderTask{Orders: orders, Locker: locker, Log: log, Cfg: cfg, Now: time.Now}
}

// Start เปิด ticker ของแต่ละ sweep จนกว่า ctx จะถูกยกเลิก
func (t *OrderTask) Start(ctx context.Context) {
	t.every(ctx, "payment_timeout", t.Cfg.PaymentSweepInterval, t.ProcessTimeoutOrders)
	t.every(ctx, "delivery_timeout", t.Cfg.DeliverySweepInterval, t.ProcessDeliveryOrders)
}

// Wait blocks until every ticker started by Start has returned.
func (t *OrderTask) Wait() { t.wg.Wait() }

func (t *OrderTask) every(ctx context.Context, name string, interval time.Duration, run func(context.Context) SweepResult) {
	if interval <= 0 {
		t.Log.Warn("sweep_disabled", "sweep", name)
		return
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.tick(ctx, name, interval, run)
			}
		}
	}()
}

func (t *OrderTask) tick(ctx context.Context, name string, interval time.Duration, run func(context.Context) SweepResult) {
	release, ok, err := t.Locker.TryLock(ctx, name, interval)
	if err != nil {
		// Redis ล่ม ก็ยัง sweep ได้ guarded update กันซ้ำให้อยู่แล้ว
		t.Log.Warn("sweep_lock_failed", "sweep", name, "error", err)
	} else if !ok {
		t.Log.Debug("sweep_lock_busy", "sweep", name)
		return
	} else {
		defer release()
	}
	run(ctx)
}

// ProcessTimeoutOrders ยกเลิก order ที่ไม่จ่ายเงินภายใน PaymentTimeout
func (t *OrderTask) ProcessTimeoutOrders(ctx context.Context) SweepResult {
	cutoff := t.Now().Add(-t.Cfg.PaymentTimeout)
	return t.sweep(ctx, "payment_timeout", entity.StatusPendingPayment, cutoff, func(o entity.Order) error {
		return t.Orders.ApplyCancel(ctx, services.SystemActor, o.ID, entity.StatusPendingPayment, services.ReasonPaymentTimeout)
	})
}

// ProcessDeliveryOrders ปิด order ที่ค้างอยู่ในสถานะกำลังส่งนานเกิน DeliveryTimeout
func (t *OrderTask) ProcessDeliveryOrders(ctx context.Context) SweepResult {
	cutoff := t.Now().Add(-t.Cfg.DeliveryTimeout)
	return t.sweep(ctx, "delivery_timeout", entity.StatusDeliveryInProgress, cutoff, func(o entity.Order) error {
		return t.Orders.ApplyComplete(ctx, services.SystemActor, o.ID, entity.StatusDeliveryInProgress)
	})
}

func (t *OrderTask) sweep(ctx context.Context, name string, status entity.OrderStatus, cutoff time.Time, apply func(entity.Order) error) SweepResult {
	var res SweepResult
	orders, err := t.Orders.ListStale(ctx, status, cutoff)
	if err != nil {
		t.Log.Error("sweep_list_failed", "sweep", name, "error", err)
		return res
	}
	res.Selected = len(orders)

	for _, o := range orders {
		if ctx.Err() != nil {
			break
		}
		err := apply(o)
		switch {
		case err == nil:
			res.Applied++
		case errors.Is(err, services.ErrStaleOrderState):
			res.Skipped++
			t.Log.Info("sweep_order_skipped", "sweep", name, "order_id", o.ID)
		default:
			res.Failed++
			t.Log.Error("sweep_order_failed", "sweep", name, "order_id", o.ID, "error", err)
		}
	}

	if res.Selected > 0 {
		t.Log.Info("sweep_done", "sweep", name,
			"selected", res.Selected, "applied", res.Applied, "skipped", res.Skipped, "failed", res.Failed)
	}
	return res
}
