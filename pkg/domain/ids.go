// Package domain holds typed identifiers shared across modules. Distinct ID
// types make it a compile error to pass a user ID where a resource ID is
// expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "kgov/pkg/domain-errors"
)

// ResourceID identifies a knowledge resource.
type ResourceID uuid.UUID

// UserID identifies a user (uploader or reviewer).
type UserID uuid.UUID

// NotificationID identifies a stored notification.
type NotificationID uuid.UUID

func (id ResourceID) String() string     { return uuid.UUID(id).String() }
func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id ResourceID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// JSON and text encodings use the canonical UUID string form.

func (id ResourceID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id NotificationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ResourceID) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *NotificationID) UnmarshalText(text []byte) error {
	parsed, err := ParseNotificationID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseResourceID parses and validates a resource ID from its string form.
// Empty, malformed, and nil UUIDs are rejected at the trust boundary.
func ParseResourceID(s string) (ResourceID, error) {
	u, err := parseUUID(s)
	return ResourceID(u), err
}

// ParseUserID parses and validates a user ID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

// ParseNotificationID parses and validates a notification ID from its string form.
func ParseNotificationID(s string) (NotificationID, error) {
	u, err := parseUUID(s)
	return NotificationID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
