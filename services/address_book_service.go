package services

import (
	"context"
	"strings"
	"time"

	"takeout/entity"
	"takeout/repository"

	"gorm.io/gorm"
)

type AddressBookService struct {
	DB   *gorm.DB
	Repo *repository.AddressBookRepository
	Now  func() time.Time
}

func NewAddressBookService(db *gorm.DB, repo *repository.AddressBookRepository) *AddressBookService {
	return &AddressBookService{DB: db, Repo: repo, Now: time.Now}
}

type AddressIn struct {
	Consignee string `json:"consignee"`
	Phone     string `json:"phone"`
	Detail    string `json:"detail"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`
}

func (s *AddressBookService) Add(ctx context.Context, actor Actor, in AddressIn) (*entity.AddressBook, error) {
	a := entity.AddressBook{
		UserID:    actor.ID,
		Consignee: strings.TrimSpace(in.Consignee),
		Phone:     strings.TrimSpace(in.Phone),
		Detail:    strings.TrimSpace(in.Detail),
		Label:     in.Label,
		IsDefault: in.IsDefault,
	}
	if a.Consignee == "" || a.Phone == "" || a.Detail == "" {
		return nil, ErrInvalidAddress
	}
	entity.StampAudit(&a, actor.ID, entity.OpInsert, s.Now())

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := s.Repo.ClearDefault(tx, actor.ID); err != nil {
				return err
			}
		}
		return s.Repo.Create(tx, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressBookService) List(ctx context.Context, actor Actor) ([]entity.AddressBook, error) {
	out, err := s.Repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.AddressBook{}
	}
	return out, nil
}
