package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"takeout/entity"
	"takeout/notifier"
	"takeout/payment"
	"takeout/pkg/logger"
	"takeout/repository"
	"takeout/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	mu     sync.Mutex
	result *payment.Result
	err    error
	before func()
	calls  []payment.Request
}

func (g *fakeGateway) RequestPayment(ctx context.Context, req payment.Request) (*payment.Result, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	before := g.before
	g.mu.Unlock()
	if before != nil {
		before()
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.result != nil {
		return g.result, nil
	}
	return &payment.Result{Confirmed: true, TransactionID: "tx-" + req.OrderNumber, Code: payment.CodeSuccess}, nil
}

type recorder struct {
	events chan notifier.Event
}

func newRecorder() *recorder { return &recorder{events: make(chan notifier.Event, 16)} }

func (r *recorder) Notify(_ context.Context, ev notifier.Event) error {
	r.events <- ev
	return nil
}

func (r *recorder) next(t *testing.T) notifier.Event {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
		return notifier.Event{}
	}
}

type fixture struct {
	db       *gorm.DB
	orders   *OrderService
	cart     *CartService
	gateway  *fakeGateway
	events   *recorder
	customer Actor
	staff    Actor
	address  *entity.AddressBook
	dish     *entity.Dish
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	cust := testutil.CreateUser(t, db, entity.RoleCustomer)
	staff := testutil.CreateUser(t, db, entity.RoleStaff)
	addr := testutil.CreateAddress(t, db, cust.ID)
	dish := testutil.CreateDish(t, db, "Dish A", "10.00", true)

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	gw := &fakeGateway{}
	rec := newRecorder()

	orders := NewOrderService(db, orderRepo, cartRepo, repository.NewAddressBookRepository(db), gw, rec, logger.Discard())
	orders.Users = repository.NewUserRepository(db)

	return &fixture{
		db:       db,
		orders:   orders,
		cart:     NewCartService(db, cartRepo, repository.NewCatalogRepository(db)),
		gateway:  gw,
		events:   rec,
		customer: Customer(cust.ID),
		staff:    Staff(staff.ID),
		address:  addr,
		dish:     dish,
	}
}

// ใส่ dish A ลงตะกร้า n ชิ้น
func (f *fixture) fillCart(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.cart.Add(context.Background(), f.customer, CartIn{DishID: f.dish.ID}))
	}
}

func (f *fixture) submit(t *testing.T) *SubmitOut {
	t.Helper()
	f.fillCart(t, 2)
	out, err := f.orders.Submit(context.Background(), f.customer, SubmitIn{AddressBookID: f.address.ID})
	require.NoError(t, err)
	return out
}

func (f *fixture) cartItems(t *testing.T) []entity.CartItem {
	t.Helper()
	items, err := f.cart.List(context.Background(), f.customer)
	require.NoError(t, err)
	return items
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
