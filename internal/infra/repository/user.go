package repository

import (
	"context"
	"time"

	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const updateLastLoginSQL = `
UPDATE users SET last_login_at = now() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

const recordFailedLoginSQL = `
UPDATE users
SET failed_login_attempts = failed_login_attempts + 1,
    locked_until = CASE
        WHEN failed_login_attempts + 1 >= $2 THEN now() + make_interval(secs => $3)
        ELSE locked_until
    END
WHERE id = $1
RETURNING locked_until`

// RecordFailedLogin bumps the counter and locks the account once the limit
// is hit, in a single statement so concurrent failures never miscount.
func (r *UserRepository) RecordFailedLogin(
	ctx context.Context,
	tx db.DBTX,
	userID uuid.UUID,
	maxAttempts int,
	lockFor time.Duration,
) (*time.Time, error) {
	var lockedUntil *time.Time
	err := tx.QueryRow(ctx, recordFailedLoginSQL, userID, maxAttempts, lockFor.Seconds()).Scan(&lockedUntil)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to record failed login", err)
	}
	return lockedUntil, nil
}

const resetFailedLoginsSQL = `
UPDATE users SET failed_login_attempts = 0, locked_until = NULL WHERE id = $1`

func (r *UserRepository) ResetFailedLogins(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, resetFailedLoginsSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to reset failed logins", err)
	}
	return nil
}
