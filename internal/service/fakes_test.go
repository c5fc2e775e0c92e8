package service

import (
	"context"
	"sort"
	"time"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

// memUserRepo is an in-memory UserRepository with the same uniqueness
// behavior as the sqlite implementation.
type memUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Init(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Token != "" && u.Token == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.PhoneNo = user.PhoneNo
	return nil
}

func (r *memUserRepo) UpdateToken(_ context.Context, id int64, token string, expiration time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Token = token
	u.TokenExpiration = expiration
	return nil
}

func (r *memUserRepo) TouchLastSeen(_ context.Context, id int64, seen time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastSeen = seen
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(context.Context) (int, error) {
	return len(r.users), nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.User
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *r.users[ids[i]])
	}
	return out, nil
}

type memOrphanageRepo struct {
	orphs  map[int64]*domain.Orphanage
	nextID int64
}

func newMemOrphanageRepo() *memOrphanageRepo {
	return &memOrphanageRepo{orphs: make(map[int64]*domain.Orphanage)}
}

func (r *memOrphanageRepo) Init(context.Context) error { return nil }

func (r *memOrphanageRepo) Create(_ context.Context, orph *domain.Orphanage) (int64, error) {
	for _, o := range r.orphs {
		if o.Name == orph.Name {
			return 0, repository.ErrDuplicateName
		}
		if o.Email == orph.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	orph.ID = r.nextID
	clone := *orph
	r.orphs[orph.ID] = &clone
	return orph.ID, nil
}

func (r *memOrphanageRepo) GetByID(_ context.Context, id int64) (*domain.Orphanage, error) {
	o, ok := r.orphs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memOrphanageRepo) GetByName(_ context.Context, name string) (*domain.Orphanage, error) {
	for _, o := range r.orphs {
		if o.Name == name {
			clone := *o
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memOrphanageRepo) Update(_ context.Context, orph *domain.Orphanage) error {
	if _, ok := r.orphs[orph.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, o := range r.orphs {
		if id == orph.ID {
			continue
		}
		if o.Name == orph.Name {
			return repository.ErrDuplicateName
		}
		if o.Email == orph.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *orph
	r.orphs[orph.ID] = &clone
	return nil
}

func (r *memOrphanageRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orphs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.orphs, id)
	return nil
}

func (r *memOrphanageRepo) Count(context.Context) (int, error) {
	return len(r.orphs), nil
}

func (r *memOrphanageRepo) List(_ context.Context, limit, offset int) ([]domain.Orphanage, error) {
	ids := make([]int64, 0, len(r.orphs))
	for id := range r.orphs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.Orphanage
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *r.orphs[ids[i]])
	}
	return out, nil
}

type memDonationRepo struct {
	donations []domain.Donation
	nextID    int64
}

func newMemDonationRepo() *memDonationRepo {
	return &memDonationRepo{}
}

func (r *memDonationRepo) Init(context.Context) error { return nil }

func (r *memDonationRepo) Create(_ context.Context, donation *domain.Donation) (int64, error) {
	r.nextID++
	donation.ID = r.nextID
	if donation.DonationTime.IsZero() {
		donation.DonationTime = time.Now().UTC()
	}
	r.donations = append(r.donations, *donation)
	return donation.ID, nil
}

func (r *memDonationRepo) ListByOrphanage(_ context.Context, orphID int64) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range r.donations {
		if d.OrphID == orphID {
			out = append(out, d)
		}
	}
	return out, nil
}

// captureNotifier records reset tokens instead of delivering them.
type captureNotifier struct {
	lastUser  *domain.User
	lastToken string
}

func (n *captureNotifier) SendPasswordReset(_ context.Context, user *domain.User, token string) error {
	n.lastUser = user
	n.lastToken = token
	return nil
}
