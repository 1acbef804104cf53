package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	txcontext "kgov/pkg/platform/tx"
)

// Postgres persists review records. Inserts join an ambient transaction when
// the context carries one, which is how records land in the same atomic unit
// as the resource status write.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) AddComplianceCheck(ctx context.Context, check models.ComplianceCheck) error {
	query := `
		INSERT INTO compliance_checks (id, resource_id, gdpr_compliant, localisation_compliant, checked_by, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		uuid.UUID(check.ResourceID),
		check.GDPRCompliant,
		check.LocalisationCompliant,
		uuid.UUID(check.CheckedBy),
		check.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert compliance check: %w", err)
	}
	return nil
}

func (s *Postgres) AddAuditRecord(ctx context.Context, record models.AuditRecord) error {
	query := `
		INSERT INTO audit_records (id, resource_id, findings, audited_by, audited_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		uuid.UUID(record.ResourceID),
		record.Findings,
		uuid.UUID(record.AuditedBy),
		record.AuditedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (s *Postgres) AddValidationRecord(ctx context.Context, record models.ValidationRecord) error {
	query := `
		INSERT INTO validation_records (id, resource_id, decision, validated_by, validated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		uuid.UUID(record.ResourceID),
		string(record.Decision),
		uuid.UUID(record.ValidatedBy),
		record.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert validation record: %w", err)
	}
	return nil
}

func (s *Postgres) AddPublishingRecord(ctx context.Context, record models.PublishingRecord) error {
	query := `
		INSERT INTO publishing_records (id, resource_id, scope, published_by, published_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		uuid.UUID(record.ResourceID),
		string(record.Scope),
		uuid.UUID(record.PublishedBy),
		record.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert publishing record: %w", err)
	}
	return nil
}

func (s *Postgres) ListComplianceChecks(ctx context.Context, resourceID id.ResourceID) ([]models.ComplianceCheck, error) {
	query := `
		SELECT resource_id, gdpr_compliant, localisation_compliant, checked_by, checked_at
		FROM compliance_checks WHERE resource_id = $1 ORDER BY checked_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(resourceID))
	if err != nil {
		return nil, fmt.Errorf("list compliance checks: %w", err)
	}
	defer rows.Close()

	checks := make([]models.ComplianceCheck, 0)
	for rows.Next() {
		var (
			check            models.ComplianceCheck
			resID, checkedBy uuid.UUID
		)
		if err := rows.Scan(&resID, &check.GDPRCompliant, &check.LocalisationCompliant, &checkedBy, &check.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan compliance check: %w", err)
		}
		check.ResourceID = id.ResourceID(resID)
		check.CheckedBy = id.UserID(checkedBy)
		checks = append(checks, check)
	}
	return checks, rows.Err()
}

func (s *Postgres) ListAuditRecords(ctx context.Context, resourceID id.ResourceID) ([]models.AuditRecord, error) {
	query := `
		SELECT resource_id, findings, audited_by, audited_at
		FROM audit_records WHERE resource_id = $1 ORDER BY audited_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(resourceID))
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	records := make([]models.AuditRecord, 0)
	for rows.Next() {
		var (
			record           models.AuditRecord
			resID, auditedBy uuid.UUID
		)
		if err := rows.Scan(&resID, &record.Findings, &auditedBy, &record.AuditedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		record.ResourceID = id.ResourceID(resID)
		record.AuditedBy = id.UserID(auditedBy)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Postgres) ListValidationRecords(ctx context.Context, resourceID id.ResourceID) ([]models.ValidationRecord, error) {
	query := `
		SELECT resource_id, decision, validated_by, validated_at
		FROM validation_records WHERE resource_id = $1 ORDER BY validated_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(resourceID))
	if err != nil {
		return nil, fmt.Errorf("list validation records: %w", err)
	}
	defer rows.Close()

	records := make([]models.ValidationRecord, 0)
	for rows.Next() {
		var (
			record             models.ValidationRecord
			resID, validatedBy uuid.UUID
			decision           string
		)
		if err := rows.Scan(&resID, &decision, &validatedBy, &record.ValidatedAt); err != nil {
			return nil, fmt.Errorf("scan validation record: %w", err)
		}
		record.ResourceID = id.ResourceID(resID)
		record.Decision = models.ValidationDecision(decision)
		record.ValidatedBy = id.UserID(validatedBy)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Postgres) ListPublishingRecords(ctx context.Context, resourceID id.ResourceID) ([]models.PublishingRecord, error) {
	query := `
		SELECT resource_id, scope, published_by, published_at
		FROM publishing_records WHERE resource_id = $1 ORDER BY published_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(resourceID))
	if err != nil {
		return nil, fmt.Errorf("list publishing records: %w", err)
	}
	defer rows.Close()

	records := make([]models.PublishingRecord, 0)
	for rows.Next() {
		var (
			record             models.PublishingRecord
			resID, publishedBy uuid.UUID
			scope              string
		)
		if err := rows.Scan(&resID, &scope, &publishedBy, &record.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan publishing record: %w", err)
		}
		record.ResourceID = id.ResourceID(resID)
		record.Scope = models.PublishingScope(scope)
		record.PublishedBy = id.UserID(publishedBy)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Postgres) DeleteByResource(ctx context.Context, resourceID id.ResourceID) error {
	for _, table := range []string{"compliance_checks", "audit_records", "validation_records", "publishing_records"} {
		if _, err := s.execer(ctx).ExecContext(ctx,
			`DELETE FROM `+table+` WHERE resource_id = $1`, uuid.UUID(resourceID)); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
