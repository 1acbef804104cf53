package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SeedUser is one development account created at startup when absent.
type SeedUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// DefaultSeedUsers covers each reviewing role once so a fresh deployment can
// exercise the full workflow immediately.
var DefaultSeedUsers = []SeedUser{
	{FirstName: "Compliance", LastName: "Officer", Email: "compliance@kgov.local", Password: "compliance-dev", Role: "compliance_officer"},
	{FirstName: "Governance", LastName: "Manager", Email: "governance@kgov.local", Password: "governance-dev", Role: "governance_manager"},
	{FirstName: "Knowledge", LastName: "Uploader", Email: "uploader@kgov.local", Password: "uploader-dev", Role: "contributor"},
}

// Seed registers the given accounts, skipping any email that already exists.
// Safe to run on every startup.
func Seed(ctx context.Context, svc *Service, store Store, logger *slog.Logger, seeds []SeedUser) error {
	if len(seeds) == 0 {
		return nil
	}

	emails := make([]string, len(seeds))
	for i, seed := range seeds {
		emails[i] = seed.Email
	}
	existing, err := store.ExistingEmails(ctx, emails)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, email := range existing {
		present[strings.ToLower(email)] = true
	}

	created := 0
	for _, seed := range seeds {
		if present[strings.ToLower(seed.Email)] {
			continue
		}
		if _, err := svc.Register(ctx, seed.FirstName, seed.LastName, seed.Email, seed.Password, seed.Role); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Email, err)
		}
		created++
	}
	if created > 0 {
		logger.InfoContext(ctx, "seeded directory users", "created", created)
	}
	return nil
}
