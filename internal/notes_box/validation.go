package notes_box

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/2beens/notesbox/pkg/apierr"

	"github.com/google/uuid"
)

const (
	MaxContentLength = 1000
	// canonical 8-4-4-4-12 form
	uuidLength = 36
)

// ValidateContent rejects blank content and content longer than
// MaxContentLength characters. The content is returned untouched.
func ValidateContent(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apierr.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(raw) > MaxContentLength {
		return "", apierr.NewValidationError(
			fmt.Sprintf("Content must be at most %d characters", MaxContentLength),
		)
	}
	return raw, nil
}

// ValidateID accepts only hyphenated UUIDs and returns them lower-cased.
func ValidateID(raw string) (string, error) {
	if raw == "" {
		return "", apierr.NewValidationError("ID is required")
	}
	if len(raw) != uuidLength {
		return "", apierr.NewValidationError("Invalid note ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apierr.NewValidationError("Invalid note ID")
	}
	return id.String(), nil
}

// ValidateExpiresIn maps an empty label to ExpiresNever.
func ValidateExpiresIn(raw string) (ExpiresIn, error) {
	switch ExpiresIn(raw) {
	case "":
		return ExpiresNever, nil
	case ExpiresNever, ExpiresHour, ExpiresDay, ExpiresWeek:
		return ExpiresIn(raw), nil
	default:
		return "", apierr.NewValidationError(
			fmt.Sprintf("Invalid expiresIn [%s], expected one of: never, 1h, 1d, 1w", raw),
		)
	}
}
