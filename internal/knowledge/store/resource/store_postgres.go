package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
	txcontext "kgov/pkg/platform/tx"
)

// Postgres persists resources in PostgreSQL. When the context carries a
// transaction (pkg/platform/tx), every statement joins it; the workflow
// relies on this for its all-or-nothing transition writes.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const resourceColumns = `id, title, description, content, category, status, uploaded_by,
	published_at, rating, rating_count, views, duplicate_flag, outdated_flag,
	has_personal_data, has_client_info, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, resource *models.KnowledgeResource) error {
	query := `
		INSERT INTO knowledge_resources (` + resourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(resource.ID),
		resource.Title,
		nullable(resource.Description),
		nullable(resource.Content),
		nullable(resource.Category),
		string(resource.Status),
		uuid.UUID(resource.UploadedBy),
		resource.PublishedAt,
		resource.Rating,
		resource.RatingCount,
		resource.Views,
		resource.DuplicateFlag,
		resource.OutdatedFlag,
		resource.HasPersonalData,
		resource.HasClientInfo,
		resource.CreatedAt,
		resource.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// FindByID reads one resource. Inside a transaction the row is locked with
// FOR UPDATE so racing transitions serialize on the precondition check
// instead of overwriting each other.
func (s *Postgres) FindByID(ctx context.Context, resourceID id.ResourceID) (*models.KnowledgeResource, error) {
	query := `SELECT ` + resourceColumns + ` FROM knowledge_resources WHERE id = $1`
	if _, inTx := txcontext.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(resourceID))
	resource, err := scanResource(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return resource, nil
}

func (s *Postgres) Update(ctx context.Context, resource *models.KnowledgeResource) error {
	query := `
		UPDATE knowledge_resources
		SET title = $2, description = $3, content = $4, category = $5, status = $6,
			published_at = $7, rating = $8, rating_count = $9, views = $10,
			duplicate_flag = $11, outdated_flag = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(resource.ID),
		resource.Title,
		nullable(resource.Description),
		nullable(resource.Content),
		nullable(resource.Category),
		string(resource.Status),
		resource.PublishedAt,
		resource.Rating,
		resource.RatingCount,
		resource.Views,
		resource.DuplicateFlag,
		resource.OutdatedFlag,
		resource.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, resourceID id.ResourceID) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM knowledge_resources WHERE id = $1`, uuid.UUID(resourceID))
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.KnowledgeResource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM knowledge_resources WHERE status = $1 ORDER BY created_at ASC`
	args := []any{string(status)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources by status: %w", err)
	}
	defer rows.Close()
	return collectResources(rows)
}

func (s *Postgres) ListByUploader(ctx context.Context, uploadedBy id.UserID) ([]*models.KnowledgeResource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM knowledge_resources WHERE uploaded_by = $1 ORDER BY created_at ASC`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(uploadedBy))
	if err != nil {
		return nil, fmt.Errorf("list resources by uploader: %w", err)
	}
	defer rows.Close()
	return collectResources(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*models.KnowledgeResource, error) {
	var (
		resource                       models.KnowledgeResource
		resourceID, uploadedBy         uuid.UUID
		description, content, category sql.NullString
		publishedAt                    sql.NullTime
		status                         string
	)
	err := row.Scan(
		&resourceID,
		&resource.Title,
		&description,
		&content,
		&category,
		&status,
		&uploadedBy,
		&publishedAt,
		&resource.Rating,
		&resource.RatingCount,
		&resource.Views,
		&resource.DuplicateFlag,
		&resource.OutdatedFlag,
		&resource.HasPersonalData,
		&resource.HasClientInfo,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	resource.ID = id.ResourceID(resourceID)
	resource.UploadedBy = id.UserID(uploadedBy)
	resource.Status = models.Status(status)
	resource.Description = description.String
	resource.Content = content.String
	resource.Category = category.String
	if publishedAt.Valid {
		t := publishedAt.Time
		resource.PublishedAt = &t
	}
	return &resource, nil
}

func collectResources(rows *sql.Rows) ([]*models.KnowledgeResource, error) {
	resources := make([]*models.KnowledgeResource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return resources, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
