package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

// DefaultResetTTL is the password reset token lifetime when none is configured.
const DefaultResetTTL = 10 * time.Minute

const resetClaim = "reset_password"

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken indicates a password reset token that is malformed or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// UserUpdate carries the mutable user fields. Nil fields are left untouched;
// the struct itself is the whitelist of what a client may change.
type UserUpdate struct {
	Username *string
	Email    *string
	PhoneNo  *string
	Password *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, email, password, phoneNo string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type userService struct {
	users    repository.UserRepository
	notifier Notifier
	secret   string
	resetTTL time.Duration
	now      func() time.Time
}

func NewUserService(users repository.UserRepository, notifier Notifier, secret string, resetTTL time.Duration) UserService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &userService{
		users:    users,
		notifier: notifier,
		secret:   secret,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password, phoneNo string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNo:      strings.TrimSpace(phoneNo),
		LastSeen:     s.now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = strings.TrimSpace(*upd.Username)
	}
	if upd.Email != nil {
		user.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.PhoneNo != nil {
		user.PhoneNo = strings.TrimSpace(*upd.PhoneNo)
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *userService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// RequestPasswordReset issues a short-lived reset token and hands it to the
// notifier. An unknown email is treated as success so callers cannot probe
// which addresses have accounts.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	claims := jwt.MapClaims{
		resetClaim: user.ID,
		"exp":      s.now().UTC().Add(s.resetTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}
	return s.notifier.SendPasswordReset(ctx, user, token)
}

func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(s.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidResetToken
	}
	rawID, ok := claims[resetClaim].(float64)
	if !ok {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByID(ctx, int64(rawID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}
