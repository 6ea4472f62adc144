//go:build e2e

package request_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/handler/dto/response"
	"fin-approvals/tests/common/authtest"
	"fin-approvals/tests/common/builder"
	"fin-approvals/tests/common/dbtest"
	"fin-approvals/tests/common/httptest"
	"fin-approvals/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const requestsURL = "/api/requests"

type RequestSuite struct {
	e2e.SharedSuite
}

func TestRequestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RequestSuite))
}

// createBody builds a request body priced into the team lead tier
// (1200 cents x 3 at 10% off = 3240 cents).
func (s *RequestSuite) createBody(t *testing.T) map[string]any {
	beans := dbtest.ArticleIDByName(t, s.DB, "Espresso Beans 1kg")
	b := builder.NewRequestBuilder().With(func(b *builder.RequestBuilder) {
		b.BuyerID = dbtest.DefaultBuyerID(t, s.DB)
		b.SiteID = nil
		b.Lines = []builder.LineSpec{
			{ArticleID: beans, Quantity: 3, DiscountPct: 10},
		}
		b.PhotoURLs = nil
	})
	body := b.BuildCreateRequestDTO()
	return map[string]any{
		"buyer_id":    body.BuyerID,
		"invoice_ref": body.InvoiceRef,
		"reason":      body.Reason,
		"lines": []map[string]any{
			{"article_id": beans, "quantity": 3, "discount_pct": 10},
		},
	}
}

func (s *RequestSuite) postRequest(t *testing.T, body any, token, idempotencyKey string) *response.RequestResponse {
	t.Helper()

	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requestsURL, body, token, headers)
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())

	var res response.RequestResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return &res
}

func (s *RequestSuite) TestCreateRequest() {
	s.Run("Normal case: request lands in the team lead tier pinned to the preferred lead", func() {
		t := s.T()

		agentID := dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		leadID := dbtest.CreateTestUser(t, s.DB, "lead@example.com", string(user.RoleTeamLead))
		dbtest.SetPreferredTeamLead(t, s.DB, agentID, leadID)

		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, s.createBody(t), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))

		expected := &response.RequestResponse{
			AgentID:          agentID,
			AgentName:        "agent",
			BuyerName:        "Default Buyer",
			InvoiceRef:       "INV-2025-0001",
			Reason:           "Repeat customer, bulk order",
			AmountCents:      3240,
			RequiredTier:     request.TierTeamLead.String(),
			Status:           "pending",
			AssigneeID:       &leadID,
			AssignmentReason: request.ReasonAgentPreference.String(),
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.RequestResponse{},
				"ID", "DivisionID", "DivisionName", "BuyerID", "AssigneeName", "Lines", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &res, opts...); diff != "" {
			t.Errorf("request response mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, res.Lines, 1)
		require.Equal(t, int64(3240), res.Lines[0].AmountCents)
	})

	s.Run("Normal case: replaying the idempotency key returns the original request", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		body := s.createBody(t)

		headers := map[string]string{"Idempotency-Key": "replay-key-000001"}
		w1 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requestsURL, body, token, headers)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requestsURL, body, token, headers)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		var first, second response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &first))
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &second))
		require.Equal(t, first.ID, second.ID, "replay must return the original request")

		var count int
		err := s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM requests WHERE agent_id = $1", first.AgentID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "replay must not insert a second row")

		var jobs int
		err = s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM notification_jobs WHERE topic = 'request_created'").Scan(&jobs)
		require.NoError(t, err)
		require.Equal(t, 1, jobs, "replay must not enqueue a second notification")
	})

	s.Run("Race: simultaneous creates with one key converge on one request", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		body := s.createBody(t)
		headers := map[string]string{"Idempotency-Key": "race-key-00000001"}

		results := make([]*nethttptest.ResponseRecorder, 2)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requestsURL, body, token, headers)
			}(i)
		}
		wg.Wait()

		ids := make([]uuid.UUID, 2)
		for i, w := range results {
			require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())
			var res response.RequestResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
			ids[i] = res.ID
		}
		require.Equal(t, ids[0], ids[1], "both callers must see the same request")

		var count int
		err := s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM requests WHERE idempotency_key = 'race-key-00000001'").Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "the race must leave a single row")
	})

	s.Run("Normal case: distinct keys create distinct requests", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		body := s.createBody(t)

		first := s.postRequest(t, body, token, "distinct-key-0001")
		second := s.postRequest(t, body, token, "distinct-key-0002")
		require.NotEqual(t, first.ID, second.ID)
	})

	s.Run("Normal case: fallback pick is the longest-serving lead, not the alphabetical one", func() {
		t := s.T()

		division := dbtest.CreateTestDivision(t, s.DB, "Fallback Division")
		dbtest.CreateTestUserInDivision(t, s.DB, "fb-agent@example.com", string(user.RoleAgent), division)
		veteranID := dbtest.CreateTestUserInDivision(t, s.DB, "zulu-lead@example.com", string(user.RoleTeamLead), division)
		dbtest.CreateTestUserInDivision(t, s.DB, "alpha-lead@example.com", string(user.RoleTeamLead), division)

		// alpha-lead sorts first by name but joined later
		_, err := s.DB.Exec(t.Context(), "UPDATE users SET created_at = now() - interval '1 day' WHERE id = $1", veteranID)
		require.NoError(t, err)

		token := authtest.LoginUser(t, s.Router, "fb-agent@example.com", "password123")
		res := s.postRequest(t, s.createBody(t), token, "")

		require.Equal(t, request.ReasonFirstInDivision.String(), res.AssignmentReason)
		require.NotNil(t, res.AssigneeID)
		require.Equal(t, veteranID, *res.AssigneeID)
	})

	s.Run("Normal case: large totals route to the sales director unassigned", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		burr := dbtest.ArticleIDByName(t, s.DB, "Grinder Burr Set")
		body := s.createBody(t)
		body["lines"] = []map[string]any{
			{"article_id": burr, "quantity": 3, "discount_pct": 0},
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, int64(29700), res.AmountCents)
		require.Equal(t, request.TierSalesDirector.String(), res.RequiredTier)
		require.Nil(t, res.AssigneeID)
		require.Equal(t, request.ReasonNone.String(), res.AssignmentReason)
	})

	s.Run("Normal case: single-total body without lines is accepted and tier routed", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		body := s.createBody(t)
		delete(body, "lines")
		body["amount_cents"] = 12500

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, int64(12500), res.AmountCents)
		require.Equal(t, request.TierDivisionManager.String(), res.RequiredTier)
		require.Empty(t, res.Lines)
	})

	s.Run("Error case: body with neither lines nor a total is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		body := s.createBody(t)
		delete(body, "lines")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, body, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Error case: inactive article is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		retired := dbtest.CreateTestArticle(t, s.DB, "Retired Blend 500g", 1500, false)
		body := s.createBody(t)
		body["lines"] = []map[string]any{
			{"article_id": retired, "quantity": 1, "discount_pct": 0},
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, body, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown buyer is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		body := s.createBody(t)
		body["buyer_id"] = uuid.New()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, body, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: approver roles cannot create requests", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "lead@example.com", string(user.RoleTeamLead))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, s.createBody(t), token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, s.createBody(t), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *RequestSuite) TestGetRequest() {
	s.Run("Normal case: owner and assignee see the request, others read it as absent", func() {
		t := s.T()

		agentID := dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		leadID := dbtest.CreateTestUser(t, s.DB, "lead@example.com", string(user.RoleTeamLead))
		dbtest.SetPreferredTeamLead(t, s.DB, agentID, leadID)

		agentToken := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		created := s.postRequest(t, s.createBody(t), agentToken, "")
		url := requestsURL + "/" + created.ID.String()

		ownerRes := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, agentToken)
		require.Equal(t, http.StatusOK, ownerRes.Code)

		leadToken := authtest.LoginUser(t, s.Router, "lead@example.com", "password123")
		leadRes := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, leadToken)
		require.Equal(t, http.StatusOK, leadRes.Code)

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other-agent@example.com", string(user.RoleAgent))
		otherRes := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, otherToken)
		require.Equal(t, http.StatusNotFound, otherRes.Code, "foreign requests must read as absent")
	})

	s.Run("Normal case: lines without a stored percent display a back-solved one", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		created := s.postRequest(t, s.createBody(t), token, "")

		_, err := s.DB.Exec(t.Context(), "UPDATE request_lines SET discount_pct = NULL WHERE request_id = $1", created.ID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Lines, 1)
		// 3240 of a 3600 gross reconstructs the original 10 percent
		require.Equal(t, float64(10), res.Lines[0].DiscountPct)
	})

	s.Run("Normal case: sales director sees requests across divisions", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		agentToken := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		created := s.postRequest(t, s.createBody(t), agentToken, "")

		otherDivision := dbtest.CreateTestDivision(t, s.DB, "Other Division")
		dbtest.CreateTestUserInDivision(t, s.DB, "director@example.com", string(user.RoleSalesDirector), otherDivision)
		directorToken := authtest.LoginUser(t, s.Router, "director@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"/"+created.ID.String(), nil, directorToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: malformed id returns 400", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "agent@example.com", string(user.RoleAgent))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"/not-a-uuid", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: Returns 404 Not Found for non-existent ID", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "agent@example.com", string(user.RoleAgent))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"/"+uuid.New().String(), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *RequestSuite) TestListMyRequests() {
	s.Run("Normal case: list is scoped to the authenticated agent", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")

		s.postRequest(t, s.createBody(t), token, "list-key-0001")
		s.postRequest(t, s.createBody(t), token, "list-key-0002")

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other-agent@example.com", string(user.RoleAgent))
		s.postRequest(t, s.createBody(t), otherToken, "list-key-0003")

		var mine []response.RequestListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
		require.Len(t, mine, 2)

		var others []response.RequestListResponse
		ow := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL, nil, otherToken)
		require.Equal(t, http.StatusOK, ow.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, ow.Body, &others))
		require.Len(t, others, 1)
	})

	s.Run("Normal case: status filter narrows the list", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		s.postRequest(t, s.createBody(t), token, "")

		var pending []response.RequestListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"?status=pending", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &pending))
		require.Len(t, pending, 1)

		var approved []response.RequestListResponse
		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"?status=approved", nil, token)
		require.Equal(t, http.StatusOK, aw.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &approved))
		require.Empty(t, approved)
	})

	s.Run("Normal case: date range filter bounds the list by creation time", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "agent@example.com", string(user.RoleAgent))
		token := authtest.LoginUser(t, s.Router, "agent@example.com", "password123")
		s.postRequest(t, s.createBody(t), token, "")

		tomorrow := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
		yesterday := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)

		var within []response.RequestListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"?from="+yesterday+"&to="+tomorrow, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &within))
		require.Len(t, within, 1)

		var future []response.RequestListResponse
		fw := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL+"?from="+tomorrow, nil, token)
		require.Equal(t, http.StatusOK, fw.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, fw.Body, &future))
		require.Empty(t, future)
	})

	s.Run("Error case: approver roles have no personal request list", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "lead@example.com", string(user.RoleTeamLead))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL, nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
