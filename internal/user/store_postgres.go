package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists directory entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, role, expertise, contribution_score, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, u User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(u.ID),
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		nullable(u.Role),
		nullable(u.Expertise),
		u.ContributionScore,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// ExistingEmails returns which of the given emails already have accounts.
// Used by the seeder to keep startup idempotent.
func (s *PostgresStore) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email FROM users WHERE lower(email) IN (SELECT lower(e) FROM unnest($1::text[]) AS e)`,
		pq.Array(emails))
	if err != nil {
		return nil, fmt.Errorf("check existing emails: %w", err)
	}
	defer rows.Close()

	existing := make([]string, 0, len(emails))
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		existing = append(existing, email)
	}
	return existing, rows.Err()
}

func (s *PostgresStore) scanUser(row *sql.Row) (*User, error) {
	var (
		u         User
		userID    uuid.UUID
		role      sql.NullString
		expertise sql.NullString
	)
	err := row.Scan(&userID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&role, &expertise, &u.ContributionScore, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Role = role.String
	u.Expertise = expertise.String
	return &u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
