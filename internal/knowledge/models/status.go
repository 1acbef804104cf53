package models

// Status is the lifecycle state of a knowledge resource.
//
// Lifecycle:
//
//	draft ──(upload flow, external)──► pending_compliance
//	pending_compliance ──approve──► pending_governance
//	pending_compliance ──reject──► rejected
//	pending_compliance ──request changes──► changes_requested
//	pending_governance ──publish──► published
//	pending_governance ──reject──► rejected
//
// published and rejected are terminal. changes_requested is terminal within
// this service; re-submission back to pending_compliance belongs to the
// external edit/upload flow.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusPendingCompliance Status = "pending_compliance"
	StatusChangesRequested  Status = "changes_requested"
	StatusPendingGovernance Status = "pending_governance"
	StatusPublished         Status = "published"
	StatusRejected          Status = "rejected"
)

// Valid reports whether s is one of the defined lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingCompliance, StatusChangesRequested,
		StatusPendingGovernance, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no workflow operation transitions out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusPublished, StatusRejected, StatusChangesRequested:
		return true
	}
	return false
}

// Operation names a workflow transition. Used for the transition table,
// metrics labels, and log lines.
type Operation string

const (
	OpApproveCompliance Operation = "approve_compliance"
	OpRejectCompliance  Operation = "reject_compliance"
	OpRequestChanges    Operation = "request_compliance_changes"
	OpPublish           Operation = "publish_knowledge"
	OpRejectGovernance  Operation = "reject_governance"
)

// transition is one row of the state machine table: the status an operation
// requires and the status it produces.
type transition struct {
	From Status
	To   Status
}

// transitions is the single source of truth for allowed (state, operation)
// pairs. A call whose resource is not in the operation's From state must be
// rejected with a conflict; applying it anyway would corrupt the audit trail
// (duplicate publishing records, status skips).
var transitions = map[Operation]transition{
	OpApproveCompliance: {From: StatusPendingCompliance, To: StatusPendingGovernance},
	OpRejectCompliance:  {From: StatusPendingCompliance, To: StatusRejected},
	OpRequestChanges:    {From: StatusPendingCompliance, To: StatusChangesRequested},
	OpPublish:           {From: StatusPendingGovernance, To: StatusPublished},
	OpRejectGovernance:  {From: StatusPendingGovernance, To: StatusRejected},
}

// TransitionFor returns the (from, to) pair for op. The second return is
// false for unknown operations.
func TransitionFor(op Operation) (from, to Status, ok bool) {
	t, ok := transitions[op]
	return t.From, t.To, ok
}

// CanApply reports whether op may run against current.
func (s Status) CanApply(op Operation) bool {
	t, ok := transitions[op]
	return ok && t.From == s
}
