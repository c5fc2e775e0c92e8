package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
	"orphanage-api/internal/service"
	"orphanage-api/internal/storage"
)

const testPassword = "dog123"

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

func (r *memUserRepo) Count(context.Context) (int, error) { return len(r.users), nil }

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

func (r *memOrphanageRepo) Count(context.Context) (int, error) { return len(r.orphs), nil }

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

type memMessageRepo struct {
	messages []domain.Message
	nextID   int64
}

func newMemMessageRepo() *memMessageRepo { return &memMessageRepo{} }

func (r *memMessageRepo) Init(context.Context) error { return nil }

func (r *memMessageRepo) Create(_ context.Context, msg *domain.Message) (int64, error) {
	r.nextID++
	msg.ID = r.nextID
	if msg.CreationDatetime.IsZero() {
		msg.CreationDatetime = time.Now().UTC()
	}
	r.messages = append(r.messages, *msg)
	return msg.ID, nil
}

func (r *memMessageRepo) Count(context.Context) (int, error) { return len(r.messages), nil }

func (r *memMessageRepo) List(_ context.Context, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	for i := offset; i < len(r.messages) && len(out) < limit; i++ {
		out = append(out, r.messages[i])
	}
	return out, nil
}

type memDonationRepo struct {
	donations []domain.Donation
	nextID    int64
}

func newMemDonationRepo() *memDonationRepo { return &memDonationRepo{} }

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

// memStore is an in-memory storage.Service keyed by base file name.
type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore { return &memStore{files: make(map[string][]byte)} }

func (s *memStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.files[name] = data
	return path.Join("static/images", name), nil
}

func (s *memStore) Delete(_ context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if _, ok := s.files[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.files, name)
	return nil
}

type testAPI struct {
	router    *gin.Engine
	users     *memUserRepo
	orphs     *memOrphanageRepo
	messages  *memMessageRepo
	donations *memDonationRepo
	store     *memStore
	tokens    service.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUserRepo()
	orphs := newMemOrphanageRepo()
	messages := newMemMessageRepo()
	donations := newMemDonationRepo()
	store := newMemStore()

	notifier := service.NewLogNotifier(logger)
	tokens := service.NewTokenService(users, time.Hour)
	userSvc := service.NewUserService(users, notifier, "test-secret", service.DefaultResetTTL)
	orphSvc := service.NewOrphanageService(orphs)
	messageSvc := service.NewMessageService(messages)
	donationSvc := service.NewDonationService(donations, users, orphs)

	handler := NewHandler(logger, userSvc, tokens, orphSvc, messageSvc, donationSvc, store, UploadPolicy{
		MaxBytes:    500 * 1024,
		AllowedExts: []string{"png", "jpg", "jpeg", "gif"},
	})

	router := gin.New()
	handler.RegisterRoutes(router)

	return &testAPI{
		router:    router,
		users:     users,
		orphs:     orphs,
		messages:  messages,
		donations: donations,
		store:     store,
		tokens:    tokens,
	}
}

// seedUser inserts a user directly and returns it with a valid bearer token.
func (a *testAPI) seedUser(t *testing.T, username string, admin bool) (*domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      admin,
		LastSeen:     time.Now().UTC(),
	}
	if _, err := a.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := a.tokens.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func (a *testAPI) seedOrphanage(t *testing.T, name string) *domain.Orphanage {
	t.Helper()
	orph := &domain.Orphanage{
		Name:       name,
		Email:      name + "@example.com",
		Students:   40,
		PhoneNo:    "0712345678",
		Location:   json.RawMessage(`{"lat":-1.28,"lng":36.82}`),
		Activities: "education",
		Country:    "Kenya",
	}
	if _, err := a.orphs.Create(context.Background(), orph); err != nil {
		t.Fatalf("seed orphanage: %v", err)
	}
	return orph
}

func (a *testAPI) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// orphanagePayload returns a complete profile body for create requests.
func orphanagePayload(name string) gin.H {
	return gin.H{
		"name":                     name,
		"email":                    name + "@example.com",
		"students":                 40,
		"phone_no":                 "0712345678",
		"location":                 gin.H{"lat": -1.28, "lng": 36.82},
		"activities":               "education, sports",
		"paypal_info":              gin.H{"email": "pay@example.com"},
		"social_media_links":       gin.H{"twitter": "@home"},
		"story":                    "Founded in 2005.",
		"money_uses":               "food, school fees",
		"photos_links":             []string{"static/images/a.png"},
		"bank_info":                "Equity 0123",
		"actId":                    "ACT-1",
		"acttype":                  "charity",
		"country":                  "Kenya",
		"good_work":                "community outreach",
		"monthly_donation":         "1000",
		"registration_certificate": "CERT-9",
		"blog_link":                "https://example.com/blog",
	}
}
