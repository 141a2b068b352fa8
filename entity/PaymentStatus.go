package entity

// PayStatus only ever moves Unpaid -> Paid -> Refunded.
type PayStatus int

const (
	PayUnpaid   PayStatus = 0
	PayPaid     PayStatus = 1
	PayRefunded PayStatus = 2
)

func (p PayStatus) String() string {
	switch p {
	case PayUnpaid:
		return "UNPAID"
	case PayPaid:
		return "PAID"
	case PayRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

type PayMethod int

const (
	PayMethodWallet    PayMethod = 1
	PayMethodPromptPay PayMethod = 2
)
