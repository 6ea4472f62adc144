package api

import (
	"errors"
	"net/http"

	reqdto "fin-approvals/internal/handler/dto/request"
	resdto "fin-approvals/internal/handler/dto/response"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApprovalHandler struct {
	approvalCommands commands.ApprovalCommands
	approvalQueries  queries.ApprovalQueries
}

func NewApprovalHandler(approvalCommands commands.ApprovalCommands, approvalQueries queries.ApprovalQueries) *ApprovalHandler {
	return &ApprovalHandler{
		approvalCommands: approvalCommands,
		approvalQueries:  approvalQueries,
	}
}

// @Summary Decide on a request
// @Description Approve or reject a pending request; the first decision wins
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.ActRequest true "Decision"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/decision [post]
func (h *ApprovalHandler) Act(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	viewer, ok := viewerFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	action, comment := req.ToDomain()

	actor := commands.Actor{
		ID:         viewer.ID,
		Role:       viewer.Role,
		DivisionID: viewer.DivisionID,
	}

	view, err := h.approvalCommands.Act(c.Request.Context(), requestID, actor, action, comment)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Request not found",
			})
		case errors.Is(err, commands.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Request already decided",
			})
		case errors.Is(err, commands.ErrWrongRole):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Role cannot decide requests of this tier",
			})
		case errors.Is(err, commands.ErrWrongDivision):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Request belongs to another division",
			})
		case errors.Is(err, commands.ErrNotAssignee):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Request is assigned to another approver",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Pending queue
// @Description List pending requests the viewer may act on
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param tier query string false "Filter by required tier"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {array} resdto.RequestListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.approvalQueries.ListPending(c.Request.Context(), viewer, filterFromQuery(c))
	if err != nil {
		if errors.Is(err, queries.ErrNotAnApprover) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RequestListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRequestListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Decision history
// @Description List decided requests from the viewer's vantage point
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(approved, rejected)
// @Param page query int false "Page number"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {array} resdto.RequestListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /approvals/history [get]
func (h *ApprovalHandler) History(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.approvalQueries.History(c.Request.Context(), viewer, filterFromQuery(c))
	if err != nil {
		if errors.Is(err, queries.ErrNotAnApprover) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RequestListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRequestListItem(item)
	}
	c.JSON(http.StatusOK, response)
}
