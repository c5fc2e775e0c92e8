package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

// OrphanageUpdate carries the mutable orphanage fields; nil fields are left
// untouched. Mirrors the profile's full field set.
type OrphanageUpdate struct {
	Name                    *string
	Email                   *string
	Students                *int
	PhoneNo                 *string
	Location                *json.RawMessage
	Activities              *string
	PaypalInfo              *json.RawMessage
	SocialMediaLinks        *json.RawMessage
	Story                   *string
	MoneyUses               *string
	PhotosLinks             *json.RawMessage
	BankInfo                *string
	ActID                   *string
	ActType                 *string
	Country                 *string
	GoodWork                *string
	MonthlyDonation         *string
	RegistrationCertificate *string
	BlogLink                *string
}

// OrphanageService describes orphanage profile operations. All mutations are
// admin-gated at the HTTP layer.
type OrphanageService interface {
	Create(ctx context.Context, orph *domain.Orphanage) error
	GetByID(ctx context.Context, id int64) (*domain.Orphanage, error)
	Update(ctx context.Context, id int64, upd OrphanageUpdate) (*domain.Orphanage, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Orphanage, error)
}

type orphanageService struct {
	orphs repository.OrphanageRepository
}

func NewOrphanageService(orphs repository.OrphanageRepository) OrphanageService {
	return &orphanageService{orphs: orphs}
}

func (s *orphanageService) Create(ctx context.Context, orph *domain.Orphanage) error {
	orph.Name = strings.TrimSpace(orph.Name)
	orph.Email = strings.TrimSpace(orph.Email)
	if orph.Name == "" {
		return errors.New("name is required")
	}
	if orph.Email == "" {
		return errors.New("email is required")
	}

	_, err := s.orphs.Create(ctx, orph)
	return err
}

func (s *orphanageService) GetByID(ctx context.Context, id int64) (*domain.Orphanage, error) {
	return s.orphs.GetByID(ctx, id)
}

func (s *orphanageService) Update(ctx context.Context, id int64, upd OrphanageUpdate) (*domain.Orphanage, error) {
	orph, err := s.orphs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyOrphanageUpdate(orph, upd)

	if err := s.orphs.Update(ctx, orph); err != nil {
		return nil, err
	}
	return orph, nil
}

func (s *orphanageService) Delete(ctx context.Context, id int64) error {
	return s.orphs.Delete(ctx, id)
}

func (s *orphanageService) Count(ctx context.Context) (int, error) {
	return s.orphs.Count(ctx)
}

func (s *orphanageService) List(ctx context.Context, limit, offset int) ([]domain.Orphanage, error) {
	return s.orphs.List(ctx, limit, offset)
}

func applyOrphanageUpdate(orph *domain.Orphanage, upd OrphanageUpdate) {
	if upd.Name != nil {
		orph.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		orph.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Students != nil {
		orph.Students = *upd.Students
	}
	if upd.PhoneNo != nil {
		orph.PhoneNo = *upd.PhoneNo
	}
	if upd.Location != nil {
		orph.Location = *upd.Location
	}
	if upd.Activities != nil {
		orph.Activities = *upd.Activities
	}
	if upd.PaypalInfo != nil {
		orph.PaypalInfo = *upd.PaypalInfo
	}
	if upd.SocialMediaLinks != nil {
		orph.SocialMediaLinks = *upd.SocialMediaLinks
	}
	if upd.Story != nil {
		orph.Story = *upd.Story
	}
	if upd.MoneyUses != nil {
		orph.MoneyUses = *upd.MoneyUses
	}
	if upd.PhotosLinks != nil {
		orph.PhotosLinks = *upd.PhotosLinks
	}
	if upd.BankInfo != nil {
		orph.BankInfo = *upd.BankInfo
	}
	if upd.ActID != nil {
		orph.ActID = *upd.ActID
	}
	if upd.ActType != nil {
		orph.ActType = *upd.ActType
	}
	if upd.Country != nil {
		orph.Country = *upd.Country
	}
	if upd.GoodWork != nil {
		orph.GoodWork = *upd.GoodWork
	}
	if upd.MonthlyDonation != nil {
		orph.MonthlyDonation = *upd.MonthlyDonation
	}
	if upd.RegistrationCertificate != nil {
		orph.RegistrationCertificate = *upd.RegistrationCertificate
	}
	if upd.BlogLink != nil {
		orph.BlogLink = *upd.BlogLink
	}
}
