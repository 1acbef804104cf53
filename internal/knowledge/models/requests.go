package models

// Request payloads for the workflow endpoints. Boolean compliance fields
// default to false when absent; optional text fields produce an AuditRecord
// only when non-empty.

// ApproveComplianceRequest is the body of POST /compliance/{id}/approve.
type ApproveComplianceRequest struct {
	GDPRCompliant      bool   `json:"gdprCompliant"`
	DataLocalizationOk bool   `json:"dataLocalizationOk"`
	Notes              string `json:"notes,omitempty"`
}

// RejectComplianceRequest is the body of POST /compliance/{id}/reject.
type RejectComplianceRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RequestChangesRequest is the body of POST /compliance/{id}/request-changes.
type RequestChangesRequest struct {
	Notes string `json:"notes,omitempty"`
}

// PublishRequest is the body of POST /governance/{id}/publish. QualityScore
// is recorded verbatim in an audit finding; this service does not validate
// it as a number range.
type PublishRequest struct {
	QualityScore *float64 `json:"qualityScore,omitempty"`
}

// RejectGovernanceRequest is the body of POST /governance/{id}/reject.
type RejectGovernanceRequest struct {
	Reason string `json:"reason,omitempty"`
}
