package notes_box

import "time"

// ExpiresIn is an expiration hint stored with the note. It only turns into
// a real store TTL when expiry enforcement is enabled.
type ExpiresIn string

const (
	ExpiresNever ExpiresIn = "never"
	ExpiresHour  ExpiresIn = "1h"
	ExpiresDay   ExpiresIn = "1d"
	ExpiresWeek  ExpiresIn = "1w"
)

// Duration returns 0 for "never" and for unknown labels.
func (e ExpiresIn) Duration() time.Duration {
	switch e {
	case ExpiresHour:
		return time.Hour
	case ExpiresDay:
		return 24 * time.Hour
	case ExpiresWeek:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	ExpiresIn ExpiresIn `json:"expiresIn,omitempty"`
	// CreatedAt and UpdatedAt are unix milliseconds
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NoteInput is the client supplied part of a note. Nil pointers mean the
// field was not supplied: on update the stored value is kept.
type NoteInput struct {
	Content   string  `json:"content"`
	IsPublic  *bool   `json:"isPublic,omitempty"`
	ExpiresIn *string `json:"expiresIn,omitempty"`
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
}
