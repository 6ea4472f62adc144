package readstore

import (
	"context"

	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"
	"fin-approvals/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findUserByIDSQL = `
SELECT id, email, name, role, division_id, is_active
FROM users WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID, &view.Email, &view.Name, &view.Role, &view.DivisionID, &view.IsActive,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}
