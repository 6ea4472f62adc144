package request

import (
	"strings"

	domrequest "fin-approvals/internal/domain/request"
)

type ActRequest struct {
	Action  string `json:"action" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (r *ActRequest) ToDomain() (domrequest.Action, string) {
	return domrequest.Action(r.Action), strings.TrimSpace(r.Comment)
}
