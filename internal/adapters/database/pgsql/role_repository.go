package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRoleRepository struct {
	BaseRepository
}

// newPgxRoleRepository creates a new repository for roles and ownership.
func newPgxRoleRepository(pool *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func (r *PgxRoleRepository) FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	var role string
	err := r.Pool.QueryRow(ctx, `SELECT role FROM principal_roles WHERE principal = $1`, string(principal)).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, fmt.Errorf("failed to find role of %s: %w", principal, err)
	}
	return domain.Role(role), nil
}

func (r *PgxRoleRepository) FindOwner(ctx context.Context) (domain.Principal, error) {
	var owner string
	err := r.Pool.QueryRow(ctx, `SELECT owner_principal FROM ledger_owner WHERE id`).Scan(&owner)
	if err != nil {
		return "", notFoundOr(err, "ledger owner")
	}
	return domain.Principal(owner), nil
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, principal domain.Principal, role domain.Role, actor domain.Principal, now time.Time) error {
	return saveRole(ctx, r.Pool, principal, role, actor, now)
}

// saveRole upserts the role row. NONE is stored as the absence of a row.
func saveRole(ctx context.Context, db dbExecutor, principal domain.Principal, role domain.Role, actor domain.Principal, now time.Time) error {
	if role == domain.RoleNone {
		if _, err := db.Exec(ctx, `DELETE FROM principal_roles WHERE principal = $1`, string(principal)); err != nil {
			return fmt.Errorf("failed to revoke role of %s: %w", principal, err)
		}
		return nil
	}

	query := `
		INSERT INTO principal_roles (principal, role, granted_by, granted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (principal) DO UPDATE
		SET role = EXCLUDED.role, granted_by = EXCLUDED.granted_by, granted_at = EXCLUDED.granted_at;
	`
	if _, err := db.Exec(ctx, query, string(principal), string(role), string(actor), now); err != nil {
		return fmt.Errorf("failed to save role of %s: %w", principal, err)
	}
	return nil
}

func (r *PgxRoleRepository) SaveOwner(ctx context.Context, owner domain.Principal, actor domain.Principal, now time.Time) error {
	query := `
		INSERT INTO ledger_owner (id, owner_principal, updated_by, updated_at)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET owner_principal = EXCLUDED.owner_principal, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, string(owner), string(actor), now); err != nil {
		return fmt.Errorf("failed to save owner: %w", err)
	}
	return nil
}

func (r *PgxRoleRepository) InitializeOwner(ctx context.Context, creator domain.Principal, now time.Time) (bool, error) {
	var seeded bool
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO ledger_owner (id, owner_principal, updated_by, updated_at)
			VALUES (TRUE, $1, $1, $2)
			ON CONFLICT (id) DO NOTHING;
		`, string(creator), now)
		if err != nil {
			return fmt.Errorf("failed to seed owner: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		seeded = true
		return saveRole(ctx, tx, creator, domain.RoleAdmin, creator, now)
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
