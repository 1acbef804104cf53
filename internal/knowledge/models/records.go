package models

import (
	"time"

	id "kgov/pkg/domain"
)

// The four review record kinds form an append-only audit trail. Records are
// created inside the same transaction as the status write that produced them
// and are never updated or individually deleted; they go away only when the
// owning resource is deleted (cascade).

// ValidationDecision is the governance body's formal verdict.
type ValidationDecision string

const (
	DecisionApproved ValidationDecision = "APPROVED"
	DecisionRejected ValidationDecision = "REJECTED"
)

// PublishingScope is the audience a published resource is released to.
type PublishingScope string

const ScopeGlobal PublishingScope = "GLOBAL"

// ComplianceCheck records the first-stage GDPR/localisation verdict.
// Created exactly once, by the compliance approval.
type ComplianceCheck struct {
	ResourceID            id.ResourceID `json:"resource_id"`
	GDPRCompliant         bool          `json:"gdpr_compliant"`
	LocalisationCompliant bool          `json:"localisation_compliant"`
	CheckedBy             id.UserID     `json:"checked_by"`
	CheckedAt             time.Time     `json:"checked_at"`
}

// AuditRecord is a free-text reviewer finding. Any transition that carries a
// notes/reason/quality-score payload produces one; a resource accumulates
// them across its lifetime.
type AuditRecord struct {
	ResourceID id.ResourceID `json:"resource_id"`
	Findings   string        `json:"findings"`
	AuditedBy  id.UserID     `json:"audited_by"`
	AuditedAt  time.Time     `json:"audited_at"`
}

// ValidationRecord is the governance decision artifact. Created exactly once
// per governance decision: APPROVED on publish, REJECTED on governance reject.
type ValidationRecord struct {
	ResourceID  id.ResourceID      `json:"resource_id"`
	Decision    ValidationDecision `json:"decision"`
	ValidatedBy id.UserID          `json:"validated_by"`
	ValidatedAt time.Time          `json:"validated_at"`
}

// PublishingRecord marks a resource as released at a given scope.
// Created exactly once, only by the publish transition.
type PublishingRecord struct {
	ResourceID  id.ResourceID   `json:"resource_id"`
	Scope       PublishingScope `json:"scope"`
	PublishedBy id.UserID       `json:"published_by"`
	PublishedAt time.Time       `json:"published_at"`
}
