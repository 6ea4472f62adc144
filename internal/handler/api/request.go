package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "fin-approvals/internal/handler/dto/request"
	resdto "fin-approvals/internal/handler/dto/response"
	"fin-approvals/internal/handler/middleware"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Submit discount request
// @Description Create a discount approval request routed to the tier its total requires
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Duplicate submission guard, 8-128 characters"
// @Param request body reqdto.CreateRequest true "Request payload"
// @Success 201 {object} resdto.RequestResponse
// @Success 200 {object} resdto.RequestResponse "Replayed idempotent submission"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	agentID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	req.Normalize()

	if !req.HasPricing() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Either lines or amount_cents is required",
		})
		return
	}

	var idempotencyKey *string
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		idempotencyKey = &key
	}

	result, err := h.requestCommands.CreateRequest(c.Request.Context(), req, agentID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAgentNotEligible):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only active agents with a division can submit requests",
			})
		case errors.Is(err, commands.ErrBuyerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Buyer not found",
			})
		case errors.Is(err, commands.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Article not found",
			})
		case errors.Is(err, commands.ErrArticleInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Article is no longer available",
			})
		case errors.Is(err, commands.ErrDuplicateRequest):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Duplicate request",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Request validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromRequestView(result.Request))
}

// @Summary Get request
// @Description Get a request by ID, scoped to the viewer's visibility
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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

	view, err := h.requestQueries.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Request not found",
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

// @Summary List own requests
// @Description List the authenticated agent's requests, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param tier query string false "Filter by required tier"
// @Param from query string false "Created at or after, RFC 3339"
// @Param to query string false "Created at or before, RFC 3339"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size, max 100"
// @Success 200 {array} resdto.RequestListResponse
// @Failure 401 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	agentID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.requestQueries.ListMine(c.Request.Context(), agentID, filterFromQuery(c))
	if err != nil {
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

func viewerFromContext(c *gin.Context) (queries.Viewer, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return queries.Viewer{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return queries.Viewer{}, false
	}
	return queries.Viewer{
		ID:         userID,
		Role:       role,
		DivisionID: middleware.GetDivisionID(c),
	}, true
}

func filterFromQuery(c *gin.Context) queries.RequestFilter {
	var filter queries.RequestFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if tier := c.Query("tier"); tier != "" {
		filter.Tier = &tier
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page.Number = page
	}
	if per, err := strconv.Atoi(c.Query("per_page")); err == nil {
		filter.Page.PerPage = per
	}
	return filter
}
