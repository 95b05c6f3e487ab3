package model

import (
	"errors"
	"strings"
	"time"
)

// Item is the domain model for an entry managed through the items API.
// Identity and timestamps are assigned by the server.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreatedTime parses CreatedAt for display. ok is false when the server
// sent something that is not RFC 3339.
func (it Item) CreatedTime() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CreateItemDto is the payload for POST /items.
type CreateItemDto struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ErrEmptyTitle is the only validation the client performs.
var ErrEmptyTitle = errors.New("title cannot be empty")

// Validate rejects a blank title.
func (d CreateItemDto) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// UpdateItemDto is the partial patch for PUT /items/{id}.
// A nil field is left out of the request body.
type UpdateItemDto struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func Ptr[T any](v T) *T { return &v }
