package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"takeout/entity"
	"takeout/notifier"
	"takeout/payment"
	"takeout/pkg/apperr"
	"takeout/pkg/logger"
	"takeout/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// submit ใหม่ทั้ง transaction ถ้าเลข order ชน unique index
const submitAttempts = 3

type AddressLookup interface {
	GetForUser(ctx context.Context, userID, id uint) (*entity.AddressBook, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	Addresses AddressLookup
	Users     UserLookup // optional: ตรวจว่าลูกค้ามีตัวตนก่อน submit
	Gateway   payment.Gateway
	Notifier  notifier.Notifier
	QR        QRGenerator
	Log       *slog.Logger

	Now       func() time.Time
	NewNumber func(time.Time) string
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	addresses AddressLookup,
	gateway payment.Gateway,
	notif notifier.Notifier,
	log *slog.Logger,
) *OrderService {
	if notif == nil {
		notif = notifier.Nop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, Addresses: addresses,
		Gateway: gateway, Notifier: notif, QR: DefaultQRGenerator, Log: log,
		Now: time.Now, NewNumber: NewOrderNumber,
	}
}

// ----- DTOs from Controller -----
type SubmitIn struct {
	AddressBookID uint             `json:"addressBookId" binding:"required"`
	PayMethod     entity.PayMethod `json:"payMethod"`
	Remark        string           `json:"remark"`
}

type SubmitOut struct {
	ID        uint            `json:"id"`
	Number    string          `json:"orderNumber"`
	Amount    decimal.Decimal `json:"orderAmount"`
	OrderTime time.Time       `json:"orderTime"`
}

type PayIn struct {
	OrderNumber string           `json:"orderNumber" binding:"required"`
	PayMethod   entity.PayMethod `json:"payMethod"`
}

type PayOut struct {
	TransactionID string    `json:"transactionId"`
	CheckoutTime  time.Time `json:"checkoutTime"`
}

// ----- Submit -----
func (s *OrderService) Submit(ctx context.Context, actor Actor, in SubmitIn) (*SubmitOut, error) {
	if s.Users != nil {
		if _, err := s.Users.FindByID(ctx, actor.ID); err != nil {
			return nil, notFound(err, ErrUserNotFound)
		}
	}
	addr, err := s.Addresses.GetForUser(ctx, actor.ID, in.AddressBookID)
	if err != nil {
		return nil, notFound(err, ErrAddressNotFound)
	}

	for attempt := 1; ; attempt++ {
		out, err := s.submitOnce(ctx, actor, addr, in)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= submitAttempts {
			return nil, err
		}
		s.Log.Warn("order_number_collision", "user_id", actor.ID, "attempt", attempt)
	}
}

func (s *OrderService) submitOnce(ctx context.Context, actor Actor, addr *entity.AddressBook, in SubmitIn) (*SubmitOut, error) {
	var out SubmitOut
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.CartRepo.ListForUpdate(tx, actor.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		// ราคาเอาจาก snapshot ในตะกร้า ไม่ดึง catalog ใหม่
		amount := decimal.Zero
		for _, it := range items {
			amount = amount.Add(it.Amount.Mul(decimal.NewFromInt(int64(it.Number))))
		}

		now := s.Now()
		payMethod := in.PayMethod
		if payMethod == 0 {
			payMethod = entity.PayMethodWallet
		}
		order := entity.Order{
			Number:        s.NewNumber(now),
			UserID:        actor.ID,
			AddressBookID: addr.ID,
			Status:        entity.StatusPendingPayment,
			PayStatus:     entity.PayUnpaid,
			PayMethod:     payMethod,
			Amount:        amount,
			Consignee:     addr.Consignee,
			Phone:         addr.Phone,
			Address:       addr.Detail,
			Remark:        in.Remark,
			OrderTime:     now,
		}
		entity.StampAudit(&order, actor.ID, entity.OpInsert, now)
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}

		lines := make([]entity.OrderLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, entity.OrderLine{
				OrderID: order.ID,
				DishID:  it.DishID,
				ComboID: it.ComboID,
				Flavor:  it.Flavor,
				Name:    it.Name,
				Image:   it.Image,
				Amount:  it.Amount,
				Number:  it.Number,
			})
		}
		if err := s.Repo.CreateLines(tx, lines); err != nil {
			return err
		}

		ids := make([]uint, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		deleted, err := s.CartRepo.DeleteItems(tx, actor.ID, ids)
		if err != nil {
			return err
		}
		// submit อีกอันเอาตะกร้าชุดนี้ไปแล้ว
		if deleted != int64(len(ids)) {
			return ErrCartChanged
		}

		out = SubmitOut{ID: order.ID, Number: order.Number, Amount: order.Amount, OrderTime: order.OrderTime}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- Pay -----

// Pay asks the gateway first and only then moves the order, guarded on
// PENDING_PAYMENT. If the timeout sweep won in between, the caller gets
// ErrStaleOrderState even though the gateway accepted the money.
func (s *OrderService) Pay(ctx context.Context, actor Actor, in PayIn) (*PayOut, error) {
	o, err := s.Repo.GetByNumber(ctx, in.OrderNumber)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if o.UserID != actor.ID {
		return nil, ErrOrderNotFound
	}
	if o.PayStatus != entity.PayUnpaid {
		return nil, ErrAlreadyPaid
	}
	if o.Status != entity.StatusPendingPayment {
		return nil, ErrOrderStatus
	}

	res, err := s.Gateway.RequestPayment(ctx, payment.Request{
		OrderNumber: o.Number,
		Amount:      o.Amount,
		Description: "takeout order " + o.Number,
		PayerID:     actor.ID,
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.Wrap(payment.ErrGateway, err)
		}
		return nil, err
	}
	if res.AlreadyPaid {
		return nil, ErrAlreadyPaid
	}
	if !res.Confirmed {
		return nil, apperr.Wrap(ErrPaymentDeclined, fmt.Errorf("gateway code %s", res.Code))
	}

	now := s.Now()
	payMethod := in.PayMethod
	if payMethod == 0 {
		payMethod = o.PayMethod
	}
	updates := entity.AuditColumns(actor.ID, now)
	updates["status"] = entity.StatusToBeConfirmed
	updates["pay_status"] = entity.PayPaid
	updates["pay_method"] = payMethod
	updates["checkout_time"] = now

	// เงินเข้าแล้ว client ตัดการเชื่อมต่อก็ต้องเขียนให้จบ
	affected, err := s.Repo.UpdateGuarded(s.DB.WithContext(context.WithoutCancel(ctx)), o.ID, entity.StatusPendingPayment, updates)
	if err != nil {
		s.Log.Error("payment_confirmed_but_update_failed",
			"order_id", o.ID, "order_number", o.Number, "transaction_id", res.TransactionID, "error", err)
		return nil, err
	}
	if affected == 0 {
		s.Log.Warn("payment_confirmed_but_order_moved",
			"order_id", o.ID, "order_number", o.Number, "transaction_id", res.TransactionID)
		return nil, ErrStaleOrderState
	}

	s.notify(notifier.Event{
		Type:        notifier.EventNewOrder,
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Content:     "order number: " + o.Number,
		At:          now,
	})
	return &PayOut{TransactionID: res.TransactionID, CheckoutTime: now}, nil
}

// ----- Reminder / Repeat -----
func (s *OrderService) Reminder(ctx context.Context, actor Actor, orderID uint) error {
	o, err := s.Repo.GetByIDForUser(ctx, actor.ID, orderID)
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}
	s.notify(notifier.Event{
		Type:        notifier.EventReminder,
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Content:     "order number: " + o.Number,
		At:          s.Now(),
	})
	return nil
}

// Repeat ใส่ของจาก order เดิมกลับเข้าตะกร้า ไม่สนสถานะ order
func (s *OrderService) Repeat(ctx context.Context, actor Actor, orderID uint) error {
	o, err := s.Repo.GetByIDForUser(ctx, actor.ID, orderID)
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}
	lines, err := s.Repo.GetLines(ctx, o.ID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrNoLines
	}

	now := s.Now()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			it := entity.CartItem{
				UserID:    actor.ID,
				DishID:    l.DishID,
				ComboID:   l.ComboID,
				Flavor:    l.Flavor,
				Name:      l.Name,
				Image:     l.Image,
				Amount:    l.Amount,
				Number:    l.Number,
				CreatedAt: now,
			}
			if err := s.CartRepo.AddOrIncrement(tx, &it); err != nil {
				return err
			}
		}
		return nil
	})
}

// async แจ้งเตือน ไม่ให้ช้าหรือพังตาม notifier
func (s *OrderService) notify(ev notifier.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Notifier.Notify(ctx, ev); err != nil {
			s.Log.Warn("order_notify_failed",
				"event", ev.Type.String(), "order_id", ev.OrderID, "error", err)
		}
	}()
}
