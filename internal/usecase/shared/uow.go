package shared

import (
	"context"
	"time"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Requests() RequestRepository
	Decisions() DecisionRepository
	Events() EventRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	DivisionByID(ctx context.Context, id uuid.UUID) (*DivisionSnapshot, error)
	ArticleByID(ctx context.Context, id uuid.UUID) (*ArticleSnapshot, error)
	BuyerByID(ctx context.Context, id uuid.UUID) (*BuyerSnapshot, error)
	RequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	RequestIDByIdempotencyKey(ctx context.Context, agentID uuid.UUID, key string) (*uuid.UUID, error)
	FirstTeamLeadInDivision(ctx context.Context, divisionID uuid.UUID) (*uuid.UUID, error)
	DivisionManagerInDivision(ctx context.Context, divisionID uuid.UUID) (*uuid.UUID, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *request.Request) (uuid.UUID, error)
	// TransitionIfPending flips a pending request to a terminal status and
	// reports whether this caller won the transition.
	TransitionIfPending(ctx context.Context, tx db.DBTX, requestID uuid.UUID, to request.Status) (bool, error)
	// RecordAssignee overwrites a missing assignee snapshot on legacy rows.
	RecordAssignee(ctx context.Context, tx db.DBTX, requestID uuid.UUID, assigneeID *uuid.UUID, reason request.AssignmentReason) error
}

type DecisionRepository interface {
	Create(ctx context.Context, tx db.DBTX, dec request.Decision) (uuid.UUID, error)
}

type EventRepository interface {
	AddRequestEvent(ctx context.Context, tx db.DBTX, requestID uuid.UUID, actorID uuid.UUID, kind string, payload []byte) error
	AddAuthEvent(ctx context.Context, tx db.DBTX, userID *uuid.UUID, email, kind, clientIP string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	// RecordFailedLogin bumps the failure counter and locks the account once
	// maxAttempts is reached. Returns the resulting lockout deadline, if any.
	RecordFailedLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, maxAttempts int, lockFor time.Duration) (*time.Time, error)
	ResetFailedLogins(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
