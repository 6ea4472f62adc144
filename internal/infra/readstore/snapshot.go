package readstore

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"
	"fin-approvals/internal/usecase/shared"

	"github.com/google/uuid"
)

// SnapshotReadStore serves the minimal reads commands validate against,
// bound to whatever transaction handle created it.
type SnapshotReadStore struct {
	db db.DBTX
}

func NewSnapshotReadStore(dbtx db.DBTX) *SnapshotReadStore {
	return &SnapshotReadStore{db: dbtx}
}

const userSnapshotSQL = `
SELECT id, email, name, role, division_id, preferred_team_lead_id,
       is_active, password_hash, failed_login_attempts, locked_until
FROM users `

func (r *SnapshotReadStore) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.scanUser(ctx, userSnapshotSQL+"WHERE id = $1", id)
}

func (r *SnapshotReadStore) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.scanUser(ctx, userSnapshotSQL+"WHERE email = $1", email)
}

func (r *SnapshotReadStore) scanUser(ctx context.Context, sql string, arg any) (*shared.UserSnapshot, error) {
	var (
		snap shared.UserSnapshot
		role string
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&snap.ID, &snap.Email, &snap.Name, &role, &snap.DivisionID,
		&snap.PreferredLeadID, &snap.Active, &snap.PasswordHash,
		&snap.FailedAttempts, &snap.LockedUntil,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	snap.Role = user.Role(role)
	return &snap, nil
}

const divisionSnapshotSQL = `
SELECT id, name, default_team_lead_id FROM divisions WHERE id = $1`

func (r *SnapshotReadStore) DivisionByID(ctx context.Context, id uuid.UUID) (*shared.DivisionSnapshot, error) {
	var snap shared.DivisionSnapshot
	err := r.db.QueryRow(ctx, divisionSnapshotSQL, id).Scan(&snap.ID, &snap.Name, &snap.DefaultTeamLeadID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find division", err)
	}
	return &snap, nil
}

const articleSnapshotSQL = `
SELECT id, name, unit_price_cents, is_active FROM articles WHERE id = $1`

func (r *SnapshotReadStore) ArticleByID(ctx context.Context, id uuid.UUID) (*shared.ArticleSnapshot, error) {
	var snap shared.ArticleSnapshot
	err := r.db.QueryRow(ctx, articleSnapshotSQL, id).Scan(&snap.ID, &snap.Name, &snap.UnitPriceCents, &snap.Active)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find article", err)
	}
	return &snap, nil
}

const buyerSnapshotSQL = `
SELECT id, name FROM buyers WHERE id = $1`

func (r *SnapshotReadStore) BuyerByID(ctx context.Context, id uuid.UUID) (*shared.BuyerSnapshot, error) {
	var snap shared.BuyerSnapshot
	err := r.db.QueryRow(ctx, buyerSnapshotSQL, id).Scan(&snap.ID, &snap.Name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find buyer", err)
	}
	return &snap, nil
}

const requestSnapshotSQL = `
SELECT id, agent_id, division_id, status, required_tier, assignee_id, amount_cents
FROM requests WHERE id = $1`

func (r *SnapshotReadStore) RequestByID(ctx context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	var (
		snap   shared.RequestSnapshot
		status string
		tier   string
	)
	err := r.db.QueryRow(ctx, requestSnapshotSQL, id).Scan(
		&snap.ID, &snap.AgentID, &snap.DivisionID, &status, &tier,
		&snap.AssigneeID, &snap.AmountCents,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request", err)
	}
	snap.Status = request.Status(status)
	snap.RequiredTier = request.Tier(tier)
	return &snap, nil
}

const requestIDByKeySQL = `
SELECT id FROM requests WHERE agent_id = $1 AND idempotency_key = $2`

func (r *SnapshotReadStore) RequestIDByIdempotencyKey(ctx context.Context, agentID uuid.UUID, key string) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, requestIDByKeySQL, agentID, key).Scan(&id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request by idempotency key", err)
	}
	return &id, nil
}

const firstTeamLeadSQL = `
SELECT id FROM users
WHERE division_id = $1 AND role = 'team_lead' AND is_active
ORDER BY created_at, id
LIMIT 1`

// Deterministic pick so every resolution of the same division agrees.
func (r *SnapshotReadStore) FirstTeamLeadInDivision(ctx context.Context, divisionID uuid.UUID) (*uuid.UUID, error) {
	return r.scanID(ctx, firstTeamLeadSQL, divisionID, "failed to find team lead in division")
}

const divisionManagerSQL = `
SELECT id FROM users
WHERE division_id = $1 AND role = 'division_manager' AND is_active
ORDER BY created_at, id
LIMIT 1`

func (r *SnapshotReadStore) DivisionManagerInDivision(ctx context.Context, divisionID uuid.UUID) (*uuid.UUID, error) {
	return r.scanID(ctx, divisionManagerSQL, divisionID, "failed to find division manager")
}

func (r *SnapshotReadStore) scanID(ctx context.Context, sql string, arg any, msg string) (*uuid.UUID, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sql, arg).Scan(&id); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return &id, nil
}
