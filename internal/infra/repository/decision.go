package repository

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

type DecisionRepository struct{}

func NewDecisionRepository() *DecisionRepository {
	return &DecisionRepository{}
}

const insertDecisionSQL = `
INSERT INTO approvals (id, request_id, actor_id, action, comment, decided_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *DecisionRepository) Create(ctx context.Context, tx db.DBTX, dec request.Decision) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertDecisionSQL,
		dec.ID(), dec.RequestID(), dec.ActorID(),
		dec.Action().String(), dec.Comment(), dec.DecidedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert decision", err)
	}
	return id, nil
}
