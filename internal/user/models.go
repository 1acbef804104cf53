// Package user is the directory of people who upload and review knowledge.
// The workflow only needs existence checks and uploader lookups; account
// management lives elsewhere.
package user

import (
	"time"

	id "kgov/pkg/domain"
)

// User is a directory entry. PasswordHash is a bcrypt hash and never
// serializes.
type User struct {
	ID                id.UserID `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role,omitempty"`
	Expertise         string    `json:"expertise,omitempty"`
	ContributionScore int       `json:"contributionScore"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
