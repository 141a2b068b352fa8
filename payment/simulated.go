package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Simulated ยืนยันทุกการจ่ายทันที ใช้ตอน dev/demo เมื่อไม่มี PAYMENT_GATEWAY_URL
// จำเลข order ที่จ่ายแล้ว ถ้าขอซ้ำจะตอบ ORDERPAID แบบ gateway จริง
type Simulated struct {
	mu   sync.Mutex
	paid map[string]string
}

func NewSimulated() *Simulated {
	return &Simulated{paid: map[string]string{}}
}

func (s *Simulated) RequestPayment(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if txID, ok := s.paid[req.OrderNumber]; ok {
		return &Result{AlreadyPaid: true, TransactionID: txID, Code: CodeOrderPaid}, nil
	}
	txID := "SIM-" + uuid.NewString()
	s.paid[req.OrderNumber] = txID
	return &Result{Confirmed: true, TransactionID: txID, Code: CodeSuccess}, nil
}
