package domain

import "time"

// Message is an immutable contact submission. It is never updated once stored.
type Message struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	PhoneNo          string
	Content          string
	CreationDatetime time.Time
}
