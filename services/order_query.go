package services

import (
	"context"
	"time"

	"takeout/entity"
	"takeout/repository"
)

type PageResult struct {
	Total   int64          `json:"total"`
	Records []entity.Order `json:"records"`
}

type HistoryQuery struct {
	Page     int                `form:"page"`
	PageSize int                `form:"pageSize"`
	Status   entity.OrderStatus `form:"status"`
}

type SearchQuery struct {
	Page      int                `form:"page"`
	PageSize  int                `form:"pageSize"`
	Number    string             `form:"number"`
	Phone     string             `form:"phone"`
	Status    entity.OrderStatus `form:"status"`
	BeginTime *time.Time         `form:"beginTime" time_format:"2006-01-02 15:04:05"`
	EndTime   *time.Time         `form:"endTime" time_format:"2006-01-02 15:04:05"`
}

type OrderStatistics struct {
	ToBeConfirmed      int64 `json:"toBeConfirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"deliveryInProgress"`
}

// Detail: staff เห็นได้ทุก order ลูกค้าเห็นแค่ของตัวเอง
func (s *OrderService) Detail(ctx context.Context, actor Actor, orderID uint) (*entity.Order, error) {
	var (
		o   *entity.Order
		err error
	)
	if actor.IsStaff() {
		o, err = s.Repo.GetByID(ctx, orderID)
	} else {
		o, err = s.Repo.GetByIDForUser(ctx, actor.ID, orderID)
	}
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	lines, err := s.Repo.GetLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (s *OrderService) History(ctx context.Context, actor Actor, q HistoryQuery) (*PageResult, error) {
	return s.page(ctx, repository.OrderQuery{
		Page: q.Page, PageSize: q.PageSize, UserID: actor.ID, Status: q.Status,
	})
}

func (s *OrderService) Search(ctx context.Context, q SearchQuery) (*PageResult, error) {
	return s.page(ctx, repository.OrderQuery{
		Page: q.Page, PageSize: q.PageSize,
		Number: q.Number, Phone: q.Phone, Status: q.Status,
		BeginTime: q.BeginTime, EndTime: q.EndTime,
	})
}

func (s *OrderService) page(ctx context.Context, q repository.OrderQuery) (*PageResult, error) {
	rows, total, err := s.Repo.Page(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, o := range rows {
		ids = append(ids, o.ID)
	}
	lines, err := s.Repo.GetLinesByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Lines = lines[rows[i].ID]
	}
	if rows == nil {
		rows = []entity.Order{}
	}
	return &PageResult{Total: total, Records: rows}, nil
}

func (s *OrderService) Statistics(ctx context.Context) (*OrderStatistics, error) {
	var out OrderStatistics
	var err error
	if out.ToBeConfirmed, err = s.Repo.CountByStatus(ctx, entity.StatusToBeConfirmed); err != nil {
		return nil, err
	}
	if out.Confirmed, err = s.Repo.CountByStatus(ctx, entity.StatusConfirmed); err != nil {
		return nil, err
	}
	if out.DeliveryInProgress, err = s.Repo.CountByStatus(ctx, entity.StatusDeliveryInProgress); err != nil {
		return nil, err
	}
	return &out, nil
}

// PickupQRCode คืน PNG ที่ encode เลข order ไว้ให้ร้านสแกนตอนรับของ
func (s *OrderService) PickupQRCode(ctx context.Context, actor Actor, orderID uint) ([]byte, error) {
	o, err := s.Repo.GetByIDForUser(ctx, actor.ID, orderID)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return s.QR.PNG(o.Number, 256)
}
