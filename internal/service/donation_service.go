package service

import (
	"context"
	"errors"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

var (
	// ErrDonorNotFound is returned when the named donor does not exist.
	ErrDonorNotFound = errors.New("user not found")
	// ErrRecipientNotFound is returned when the named orphanage does not exist.
	ErrRecipientNotFound = errors.New("orphanage not found")
	// ErrInvalidAmount is returned when a donation amount is not positive.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// DonationService records donations and lists them per orphanage.
type DonationService interface {
	Donate(ctx context.Context, username, orphanageName string, amountCents int64) (*domain.Donation, error)
	ListByOrphanage(ctx context.Context, orphID int64) (*domain.Orphanage, []domain.Donation, error)
}

type donationService struct {
	donations repository.DonationRepository
	users     repository.UserRepository
	orphs     repository.OrphanageRepository
}

func NewDonationService(donations repository.DonationRepository, users repository.UserRepository, orphs repository.OrphanageRepository) DonationService {
	return &donationService{
		donations: donations,
		users:     users,
		orphs:     orphs,
	}
}

// Donate resolves the donor by username and the recipient by orphanage name,
// then records the immutable donation fact.
func (s *donationService) Donate(ctx context.Context, username, orphanageName string, amountCents int64) (*domain.Donation, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	orph, err := s.orphs.GetByName(ctx, orphanageName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	donation := &domain.Donation{
		AmountCents:   amountCents,
		UserID:        user.ID,
		OrphID:        orph.ID,
		DonorUsername: user.Username,
		RecipientName: orph.Name,
	}
	if _, err := s.donations.Create(ctx, donation); err != nil {
		return nil, err
	}
	return donation, nil
}

func (s *donationService) ListByOrphanage(ctx context.Context, orphID int64) (*domain.Orphanage, []domain.Donation, error) {
	orph, err := s.orphs.GetByID(ctx, orphID)
	if err != nil {
		return nil, nil, err
	}
	donations, err := s.donations.ListByOrphanage(ctx, orphID)
	if err != nil {
		return nil, nil, err
	}
	return orph, donations, nil
}
