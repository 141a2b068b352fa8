package payment

import (
	"context"

	"takeout/pkg/apperr"

	"github.com/shopspring/decimal"
)

// Request คือข้อมูลที่ส่งไปขอชำระเงินหนึ่งครั้ง
type Request struct {
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PayerID     uint            `json:"payerId"`
}

// Result is the gateway verdict. Exactly one of Confirmed or AlreadyPaid is
// set on success; neither set means the payment was declined with Code.
type Result struct {
	Confirmed     bool   `json:"confirmed"`
	AlreadyPaid   bool   `json:"alreadyPaid"`
	TransactionID string `json:"transactionId,omitempty"`
	Code          string `json:"code"`
	Message       string `json:"message,omitempty"`
}

type Gateway interface {
	RequestPayment(ctx context.Context, req Request) (*Result, error)
}

// ErrGateway wraps transport and protocol failures talking to the gateway.
var ErrGateway = apperr.External("payment gateway error")

const (
	CodeSuccess   = "SUCCESS"
	CodeOrderPaid = "ORDERPAID"
)
