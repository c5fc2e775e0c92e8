package domain

import "time"

// User represents a registered account. Token and TokenExpiration carry the
// bearer token state; a revoked token keeps its value with an expiration in
// the past.
type User struct {
	ID              int64
	Username        string
	Email           string
	PasswordHash    string
	PhoneNo         string
	IsAdmin         bool
	LastSeen        time.Time
	Token           string
	TokenExpiration time.Time
}
