package notifier

import (
	"context"
	"errors"
	"time"
)

type EventType int

const (
	EventNewOrder EventType = 1 // ลูกค้าจ่ายเงินแล้ว รอร้านยืนยัน
	EventReminder EventType = 2 // ลูกค้ากดเร่ง
)

func (t EventType) String() string {
	switch t {
	case EventNewOrder:
		return "new_order"
	case EventReminder:
		return "reminder"
	default:
		return "unknown"
	}
}

// Event is what staff dashboards and downstream consumers receive.
type Event struct {
	Type        EventType `json:"type"`
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Content     string    `json:"content"`
	At          time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi ส่ง event ไปทุกตัว ตัวไหนพังก็ยังส่งตัวที่เหลือต่อ
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
