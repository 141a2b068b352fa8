package repository

import (
	"context"
	"time"

	"takeout/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Lines").Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// order ของลูกค้าคนนั้นเท่านั้น
func (r *OrderRepository) GetByIDForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).Where("number = ?", number).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderQuery คือเงื่อนไขของ listing แบบแบ่งหน้า ค่า zero = ไม่กรอง
type OrderQuery struct {
	Page     int
	PageSize int

	UserID    uint
	Status    entity.OrderStatus
	Number    string
	Phone     string
	BeginTime *time.Time
	EndTime   *time.Time
}

func (q *OrderQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 200 {
		q.PageSize = 10
	}
}

func (r *OrderRepository) Page(ctx context.Context, q OrderQuery) ([]entity.Order, int64, error) {
	q.normalize()

	db := r.DB.WithContext(ctx).Model(&entity.Order{})
	if q.UserID != 0 {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.Status != 0 {
		db = db.Where("status = ?", q.Status)
	}
	if q.Number != "" {
		db = db.Where("number LIKE ?", "%"+q.Number+"%")
	}
	if q.Phone != "" {
		db = db.Where("phone LIKE ?", "%"+q.Phone+"%")
	}
	if q.BeginTime != nil {
		db = db.Where("order_time >= ?", *q.BeginTime)
	}
	if q.EndTime != nil {
		db = db.Where("order_time <= ?", *q.EndTime)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Order
	if err := db.Order("order_time DESC, id DESC").
		Limit(q.PageSize).Offset((q.Page - 1) * q.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).Where("status = ?", status).Count(&cnt).Error
	return cnt, err
}

// ใช้กับ sweep: order ที่ค้างอยู่ใน status นี้ตั้งแต่ก่อน before
func (r *OrderRepository) ListByStatusBefore(ctx context.Context, status entity.OrderStatus, before time.Time) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Where("status = ? AND order_time < ?", status, before).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// UpdateGuarded applies updates only while the order is still in status from.
// Zero rows affected means someone else moved the order first; it is not an error here.
func (r *OrderRepository) UpdateGuarded(tx *gorm.DB, orderID uint, from entity.OrderStatus, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Order Lines ----------------

func (r *OrderRepository) CreateLines(tx *gorm.DB, lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return tx.CreateInBatches(&lines, 100).Error
}

func (r *OrderRepository) GetLines(ctx context.Context, orderID uint) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&lines).Error
	return lines, err
}

// โหลด lines ของหลาย order ในครั้งเดียว (ใช้ตอนแบ่งหน้า)
func (r *OrderRepository) GetLinesByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]entity.OrderLine, error) {
	out := make(map[uint][]entity.OrderLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var lines []entity.OrderLine
	if err := r.DB.WithContext(ctx).Where("order_id IN ?", orderIDs).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	for _, l := range lines {
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	return out, nil
}
