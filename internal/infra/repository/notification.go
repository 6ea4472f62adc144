package repository

import (
	"context"
	"time"

	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository enqueues outbox jobs in the same transaction as the
// write they announce. A separate worker drains the table.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const insertJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4, $5)`

func (r *NotificationRepository) CreateJob(
	ctx context.Context,
	tx db.DBTX,
	kind, topic string,
	payload []byte,
	runAt time.Time,
) error {
	if _, err := tx.Exec(ctx, insertJobSQL, uuid.New(), kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to insert notification job", err)
	}
	return nil
}
