package entity

type OrderStatus int

// ลำดับตัวเลขมีความหมาย: ลูกค้ายกเลิกเองได้เฉพาะสถานะที่น้อยกว่า Confirmed
const (
	StatusPendingPayment     OrderStatus = 1
	StatusToBeConfirmed      OrderStatus = 2
	StatusConfirmed          OrderStatus = 3
	StatusDeliveryInProgress OrderStatus = 4
	StatusCompleted          OrderStatus = 5
	StatusCancelled          OrderStatus = 6
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPendingPayment:
		return "PENDING_PAYMENT"
	case StatusToBeConfirmed:
		return "TO_BE_CONFIRMED"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusDeliveryInProgress:
		return "DELIVERY_IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func (s OrderStatus) Valid() bool {
	return s >= StatusPendingPayment && s <= StatusCancelled
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
