package repository

import (
	"context"

	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

// EventRepository appends to the audit trails. Rows are never updated.
type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

const insertRequestEventSQL = `
INSERT INTO request_events (id, request_id, actor_id, kind, payload)
VALUES ($1, $2, $3, $4, $5)`

func (r *EventRepository) AddRequestEvent(
	ctx context.Context,
	tx db.DBTX,
	requestID uuid.UUID,
	actorID uuid.UUID,
	kind string,
	payload []byte,
) error {
	if _, err := tx.Exec(ctx, insertRequestEventSQL, uuid.New(), requestID, actorID, kind, payload); err != nil {
		return infra.WrapRepoErr("failed to insert request event", err)
	}
	return nil
}

const insertAuthEventSQL = `
INSERT INTO auth_events (id, user_id, email, kind, client_ip)
VALUES ($1, $2, $3, $4, $5)`

func (r *EventRepository) AddAuthEvent(
	ctx context.Context,
	tx db.DBTX,
	userID *uuid.UUID,
	email, kind, clientIP string,
) error {
	if _, err := tx.Exec(ctx, insertAuthEventSQL, uuid.New(), userID, email, kind, clientIP); err != nil {
		return infra.WrapRepoErr("failed to insert auth event", err)
	}
	return nil
}
