// services/order_transitions.go
package services

import (
	"context"
	"strings"
	"time"

	"takeout/entity"

	"gorm.io/gorm"
)

const (
	ReasonCustomerCancel = "cancelled by customer"
	ReasonPaymentTimeout = "timed out, automatically cancelled"
)

// pay_status เดินหน้าอย่างเดียว: PAID -> REFUNDED ใน statement เดียวกับ status
func refundExpr() any {
	return gorm.Expr("CASE WHEN pay_status = ? THEN ? ELSE pay_status END", entity.PayPaid, entity.PayRefunded)
}

func (s *OrderService) guarded(ctx context.Context, actor Actor, orderID uint, from entity.OrderStatus, updates map[string]any, now time.Time) error {
	for k, v := range entity.AuditColumns(actor.ID, now) {
		updates[k] = v
	}
	affected, err := s.Repo.UpdateGuarded(s.DB.WithContext(ctx), orderID, from, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleOrderState
	}
	return nil
}

func (s *OrderService) load(ctx context.Context, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return o, nil
}

// ----- Transition primitives (shared with the sweeps) -----

// ApplyCancel moves the order from the given status to CANCELLED, refunding if it was paid.
func (s *OrderService) ApplyCancel(ctx context.Context, actor Actor, orderID uint, from entity.OrderStatus, reason string) error {
	now := s.Now()
	return s.guarded(ctx, actor, orderID, from, map[string]any{
		"status":        entity.StatusCancelled,
		"pay_status":    refundExpr(),
		"cancel_reason": reason,
		"cancel_time":   now,
	}, now)
}

func (s *OrderService) ApplyComplete(ctx context.Context, actor Actor, orderID uint, from entity.OrderStatus) error {
	now := s.Now()
	return s.guarded(ctx, actor, orderID, from, map[string]any{
		"status":        entity.StatusCompleted,
		"delivery_time": now,
	}, now)
}

func (s *OrderService) ListStale(ctx context.Context, status entity.OrderStatus, before time.Time) ([]entity.Order, error) {
	return s.Repo.ListByStatusBefore(ctx, status, before)
}

// ----- Staff actions -----
type ConfirmIn struct {
	ID                    uint       `json:"id" binding:"required"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
}

type RejectIn struct {
	ID              uint   `json:"id" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
}

type CancelIn struct {
	ID           uint   `json:"id" binding:"required"`
	CancelReason string `json:"cancelReason"`
}

func (s *OrderService) Confirm(ctx context.Context, actor Actor, in ConfirmIn) error {
	o, err := s.load(ctx, in.ID)
	if err != nil {
		return err
	}
	if o.Status != entity.StatusToBeConfirmed {
		return ErrOrderStatus
	}
	updates := map[string]any{"status": entity.StatusConfirmed}
	if in.EstimatedDeliveryTime != nil {
		updates["estimated_delivery_time"] = *in.EstimatedDeliveryTime
	}
	return s.guarded(ctx, actor, o.ID, entity.StatusToBeConfirmed, updates, s.Now())
}

func (s *OrderService) Reject(ctx context.Context, actor Actor, in RejectIn) error {
	reason := strings.TrimSpace(in.RejectionReason)
	if reason == "" {
		return ErrReasonRequired
	}
	o, err := s.load(ctx, in.ID)
	if err != nil {
		return err
	}
	if o.Status != entity.StatusToBeConfirmed {
		return ErrOrderStatus
	}
	now := s.Now()
	return s.guarded(ctx, actor, o.ID, entity.StatusToBeConfirmed, map[string]any{
		"status":           entity.StatusCancelled,
		"pay_status":       refundExpr(),
		"rejection_reason": reason,
		"cancel_reason":    reason,
		"cancel_time":      now,
	}, now)
}

// Cancel (staff) ยกเลิกได้ทุกสถานะที่ยังไม่จบ
func (s *OrderService) Cancel(ctx context.Context, actor Actor, in CancelIn) error {
	reason := strings.TrimSpace(in.CancelReason)
	if reason == "" {
		return ErrReasonRequired
	}
	o, err := s.load(ctx, in.ID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return ErrOrderStatus
	}
	return s.ApplyCancel(ctx, actor, o.ID, o.Status, reason)
}

func (s *OrderService) Deliver(ctx context.Context, actor Actor, orderID uint) error {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != entity.StatusConfirmed {
		return ErrOrderStatus
	}
	return s.guarded(ctx, actor, o.ID, entity.StatusConfirmed, map[string]any{
		"status": entity.StatusDeliveryInProgress,
	}, s.Now())
}

func (s *OrderService) Complete(ctx context.Context, actor Actor, orderID uint) error {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != entity.StatusDeliveryInProgress {
		return ErrOrderStatus
	}
	return s.ApplyComplete(ctx, actor, o.ID, entity.StatusDeliveryInProgress)
}

// ----- Customer actions -----

// CancelByCustomer: ลูกค้ายกเลิกเองได้แค่ก่อนร้านรับ order
func (s *OrderService) CancelByCustomer(ctx context.Context, actor Actor, orderID uint) error {
	o, err := s.Repo.GetByIDForUser(ctx, actor.ID, orderID)
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}
	if o.Status > entity.StatusToBeConfirmed {
		return ErrMustContactBusiness
	}
	return s.ApplyCancel(ctx, actor, o.ID, o.Status, ReasonCustomerCancel)
}
