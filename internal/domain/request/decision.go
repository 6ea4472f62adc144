package request

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the single terminal verdict recorded for a request.
type Decision struct {
	id        uuid.UUID
	requestID uuid.UUID
	actorID   uuid.UUID
	action    Action
	comment   string
	decidedAt time.Time
}

func NewDecision(id, requestID, actorID uuid.UUID, action Action, comment string, now time.Time) Decision {
	return Decision{
		id:        id,
		requestID: requestID,
		actorID:   actorID,
		action:    action,
		comment:   comment,
		decidedAt: now,
	}
}

func (d Decision) ID() uuid.UUID        { return d.id }
func (d Decision) RequestID() uuid.UUID { return d.requestID }
func (d Decision) ActorID() uuid.UUID   { return d.actorID }
func (d Decision) Action() Action       { return d.action }
func (d Decision) Comment() string      { return d.comment }
func (d Decision) DecidedAt() time.Time { return d.decidedAt }
