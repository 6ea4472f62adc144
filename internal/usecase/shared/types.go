package shared

import (
	"time"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"

	"github.com/google/uuid"
)

type UserSnapshot struct {
	ID              uuid.UUID
	Email           string
	Name            string
	Role            user.Role
	DivisionID      *uuid.UUID
	PreferredLeadID *uuid.UUID
	Active          bool
	PasswordHash    string
	FailedAttempts  int
	LockedUntil     *time.Time
}

type DivisionSnapshot struct {
	ID                uuid.UUID
	Name              string
	DefaultTeamLeadID *uuid.UUID
}

type ArticleSnapshot struct {
	ID             uuid.UUID
	Name           string
	UnitPriceCents int64
	Active         bool
}

type BuyerSnapshot struct {
	ID   uuid.UUID
	Name string
}

// RequestSnapshot carries the fields approval guards check, read inside the
// deciding transaction.
type RequestSnapshot struct {
	ID           uuid.UUID
	AgentID      uuid.UUID
	DivisionID   uuid.UUID
	Status       request.Status
	RequiredTier request.Tier
	AssigneeID   *uuid.UUID
	AmountCents  int64
}
