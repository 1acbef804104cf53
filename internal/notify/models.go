package notify

import (
	"time"

	id "kgov/pkg/domain"
)

// Notification is one message delivered to a user's inbox. The workflow
// treats delivery as fire-and-forget; the stored record exists so users can
// read outcomes later.
type Notification struct {
	ID        id.NotificationID `json:"id"`
	UserID    id.UserID         `json:"-"`
	Message   string            `json:"message"`
	Category  string            `json:"type"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}
