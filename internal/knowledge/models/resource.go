package models

import (
	"time"

	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
)

// KnowledgeResource is the aggregate the approval workflow operates on.
//
// Invariants:
//   - Status is always one of the defined lifecycle states
//   - PublishedAt is non-nil if and only if Status == published, and once
//     set it is never cleared by the workflow
//   - Status is written only by the workflow engine; no other component
//     mutates it
//
// Rating, RatingCount and Views are read-path conveniences maintained by
// out-of-scope flows; the workflow never touches them. HasPersonalData and
// HasClientInfo are informational flags set at creation and surfaced to
// compliance reviewers.
type KnowledgeResource struct {
	ID              id.ResourceID `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Content         string        `json:"content,omitempty"`
	Category        string        `json:"category,omitempty"`
	Status          Status        `json:"status"`
	UploadedBy      id.UserID     `json:"uploaded_by"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	Rating          float64       `json:"rating"`
	RatingCount     int           `json:"rating_count"`
	Views           int           `json:"views"`
	DuplicateFlag   bool          `json:"duplicate_flag"`
	OutdatedFlag    bool          `json:"outdated_flag"`
	HasPersonalData bool          `json:"has_personal_data"`
	HasClientInfo   bool          `json:"has_client_info"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CanApply checks the from-state precondition for op.
// Returns a conflict error describing the mismatch when the transition is
// not allowed from the current status.
func (r *KnowledgeResource) CanApply(op Operation) error {
	from, _, ok := TransitionFor(op)
	if !ok {
		return dErrors.Newf(dErrors.CodeInternal, "unknown workflow operation %q", op)
	}
	if r.Status != from {
		return dErrors.Newf(dErrors.CodeConflict,
			"resource is %s, %s requires %s", r.Status, op, from)
	}
	return nil
}

// Apply transitions the resource for op without re-validating; call CanApply
// first. PublishedAt is set exactly once, on the publish transition.
func (r *KnowledgeResource) Apply(op Operation, now time.Time) {
	_, to, _ := TransitionFor(op)
	r.Status = to
	if op == OpPublish && r.PublishedAt == nil {
		published := now
		r.PublishedAt = &published
	}
	r.UpdatedAt = now
}

// NewResource constructs a resource in the upload flow's initial state.
// Exists for tests and seeding; the real upload flow is an external
// collaborator.
func NewResource(resourceID id.ResourceID, title string, uploadedBy id.UserID, now time.Time) (*KnowledgeResource, error) {
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resource title cannot be empty")
	}
	if uploadedBy.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resource uploader is required")
	}
	return &KnowledgeResource{
		ID:         resourceID,
		Title:      title,
		Status:     StatusPendingCompliance,
		UploadedBy: uploadedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
