//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	reqdto "fin-approvals/internal/handler/dto/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/errs"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/queries"
	"fin-approvals/internal/usecase/shared"
	queriesmock "fin-approvals/tests/mock/queries"
	sharedmock "fin-approvals/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type requestMocks struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	requests *sharedmock.MockRequestRepository
	events   *sharedmock.MockEventRepository
	notifs   *sharedmock.MockNotificationRepository
	queries  *queriesmock.MockRequestQueries
}

func newRequestMocks(ctrl *gomock.Controller) *requestMocks {
	m := &requestMocks{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		reads:    sharedmock.NewMockCommandReads(ctrl),
		requests: sharedmock.NewMockRequestRepository(ctrl),
		events:   sharedmock.NewMockEventRepository(ctrl),
		notifs:   sharedmock.NewMockNotificationRepository(ctrl),
		queries:  queriesmock.NewMockRequestQueries(ctrl),
	}

	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()
	m.tx.EXPECT().Reads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().Requests().Return(m.requests).AnyTimes()
	m.tx.EXPECT().Events().Return(m.events).AnyTimes()
	m.tx.EXPECT().Notifications().Return(m.notifs).AnyTimes()
	m.tx.EXPECT().DB().Return(nil).AnyTimes()

	return m
}

func (m *requestMocks) newCommands() commands.RequestCommands {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	return commands.NewRequestCommands(m.uow, commands.NewAssigneeResolver(), m.queries, clk)
}

func TestRequestCommands_CreateRequest(t *testing.T) {
	ctx := context.Background()

	divisionID := uuid.New()
	agentID := uuid.New()
	buyerID := uuid.New()
	articleID := uuid.New()
	leadID := uuid.New()

	agent := &shared.UserSnapshot{
		ID:              agentID,
		Role:            user.RoleAgent,
		DivisionID:      &divisionID,
		PreferredLeadID: &leadID,
		Active:          true,
	}
	article := &shared.ArticleSnapshot{
		ID:             articleID,
		Name:           "Espresso Beans 1kg",
		UnitPriceCents: 1200,
		Active:         true,
	}
	lead := &shared.UserSnapshot{
		ID:         leadID,
		Role:       user.RoleTeamLead,
		DivisionID: &divisionID,
		Active:     true,
	}

	dto := reqdto.CreateRequest{
		BuyerID:    buyerID,
		InvoiceRef: "INV-2025-0042",
		Lines:      []reqdto.LineInput{{ArticleID: articleID, Quantity: 3, DiscountPct: 10}},
	}

	t.Run("creates and pins a team lead tier request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID, Name: "Default Buyer"}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(article, nil)
		m.reads.EXPECT().UserByID(ctx, leadID).Return(lead, nil)

		var created *request.Request
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req *request.Request) (uuid.UUID, error) {
				created = req
				return req.ID(), nil
			})
		m.events.EXPECT().AddRequestEvent(ctx, nil, gomock.Any(), agentID, "request_created", gomock.Any()).Return(nil)
		m.notifs.EXPECT().CreateJob(ctx, nil, "email", "request_created", gomock.Any(), gomock.Any()).Return(nil)
		m.queries.EXPECT().GetByIDSystem(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
				return &queries.RequestView{ID: id}, nil
			})

		result, err := m.newCommands().CreateRequest(ctx, dto, agentID, nil)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)

		require.NotNil(t, created)
		// 1200 * 3 * 0.9 = 3240, below the team lead ceiling
		assert.Equal(t, int64(3240), created.Amount().Cents())
		assert.Equal(t, request.TierTeamLead, created.RequiredTier())
		require.NotNil(t, created.AssigneeID())
		assert.Equal(t, leadID, *created.AssigneeID())
		assert.Equal(t, request.ReasonAgentPreference, created.AssignmentReason())
	})

	t.Run("single-total body without lines routes by the bare amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)

		var created *request.Request
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req *request.Request) (uuid.UUID, error) {
				created = req
				return req.ID(), nil
			})
		m.events.EXPECT().AddRequestEvent(ctx, nil, gomock.Any(), agentID, "request_created", gomock.Any()).Return(nil)
		m.notifs.EXPECT().CreateJob(ctx, nil, "email", "request_created", gomock.Any(), gomock.Any()).Return(nil)
		m.queries.EXPECT().GetByIDSystem(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
				return &queries.RequestView{ID: id}, nil
			})

		total := int64(12500)
		legacy := dto
		legacy.Lines = nil
		legacy.AmountCents = &total

		_, err := m.newCommands().CreateRequest(ctx, legacy, agentID, nil)
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Empty(t, created.Lines())
		assert.Equal(t, int64(12500), created.Amount().Cents())
		assert.Equal(t, request.TierDivisionManager, created.RequiredTier())
		assert.Nil(t, created.AssigneeID())
	})

	t.Run("caller-priced line amount overrides computed pricing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(article, nil)
		m.reads.EXPECT().UserByID(ctx, leadID).Return(lead, nil)

		var created *request.Request
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req *request.Request) (uuid.UUID, error) {
				created = req
				return req.ID(), nil
			})
		m.events.EXPECT().AddRequestEvent(ctx, nil, gomock.Any(), agentID, "request_created", gomock.Any()).Return(nil)
		m.notifs.EXPECT().CreateJob(ctx, nil, "email", "request_created", gomock.Any(), gomock.Any()).Return(nil)
		m.queries.EXPECT().GetByIDSystem(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
				return &queries.RequestView{ID: id}, nil
			})

		lineTotal := int64(3000)
		priced := dto
		priced.Lines = []reqdto.LineInput{{ArticleID: articleID, Quantity: 3, DiscountPct: 10, AmountCents: &lineTotal}}

		_, err := m.newCommands().CreateRequest(ctx, priced, agentID, nil)
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, int64(3000), created.Amount().Cents())
		assert.Equal(t, request.TierTeamLead, created.RequiredTier())
	})

	t.Run("replayed idempotency key returns the stored request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		existingID := uuid.New()
		m.reads.EXPECT().RequestIDByIdempotencyKey(ctx, agentID, "retry-key-001").Return(&existingID, nil)
		m.queries.EXPECT().GetByIDSystem(ctx, existingID).Return(&queries.RequestView{ID: existingID}, nil)

		key := "retry-key-001"
		result, err := m.newCommands().CreateRequest(ctx, dto, agentID, &key)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, existingID, result.Request.ID)
	})

	t.Run("losing the insert race still replays", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		// The winner's row only becomes visible once the losing transaction
		// rolled back, so the second lookup runs against the pool.
		existingID := uuid.New()
		gomock.InOrder(
			m.reads.EXPECT().RequestIDByIdempotencyKey(ctx, agentID, "retry-key-001").Return(nil, notFoundErr()),
			m.uow.EXPECT().CommandReads().Return(m.reads),
			m.reads.EXPECT().RequestIDByIdempotencyKey(ctx, agentID, "retry-key-001").Return(&existingID, nil),
		)
		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(article, nil)
		m.reads.EXPECT().UserByID(ctx, leadID).Return(lead, nil)

		dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert request", dup))
		m.queries.EXPECT().GetByIDSystem(ctx, existingID).Return(&queries.RequestView{ID: existingID}, nil)

		key := "retry-key-001"
		result, err := m.newCommands().CreateRequest(ctx, dto, agentID, &key)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, existingID, result.Request.ID)
	})

	t.Run("failed notification enqueue fails the whole create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(article, nil)
		m.reads.EXPECT().UserByID(ctx, leadID).Return(lead, nil)

		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req *request.Request) (uuid.UUID, error) {
				return req.ID(), nil
			})
		m.events.EXPECT().AddRequestEvent(ctx, nil, gomock.Any(), agentID, "request_created", gomock.Any()).Return(nil)
		m.notifs.EXPECT().CreateJob(ctx, nil, "email", "request_created", gomock.Any(), gomock.Any()).
			Return(errs.New("insert notification job"))

		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, nil)
		assert.ErrorIs(t, err, commands.ErrDatabaseOperationFailed)
	})

	t.Run("duplicate insert without a recoverable row surfaces as duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		gomock.InOrder(
			m.reads.EXPECT().RequestIDByIdempotencyKey(ctx, agentID, "retry-key-001").Return(nil, notFoundErr()),
			m.uow.EXPECT().CommandReads().Return(m.reads),
			m.reads.EXPECT().RequestIDByIdempotencyKey(ctx, agentID, "retry-key-001").Return(nil, notFoundErr()),
		)
		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(article, nil)
		m.reads.EXPECT().UserByID(ctx, leadID).Return(lead, nil)

		dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert request", dup))

		key := "retry-key-001"
		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, &key)
		assert.ErrorIs(t, err, commands.ErrDuplicateRequest)
	})

	t.Run("malformed idempotency key is rejected before any read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		key := "short"
		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, &key)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("non-agent caller is not eligible", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(lead, nil)

		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, nil)
		assert.ErrorIs(t, err, commands.ErrAgentNotEligible)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(nil, notFoundErr())

		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, nil)
		assert.ErrorIs(t, err, commands.ErrBuyerNotFound)
	})

	t.Run("inactive article", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		inactive := *article
		inactive.Active = false
		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(&inactive, nil)

		_, err := m.newCommands().CreateRequest(ctx, dto, agentID, nil)
		assert.ErrorIs(t, err, commands.ErrArticleInactive)
	})

	t.Run("large totals escalate to the sales director unpinned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := newRequestMocks(ctrl)

		expensive := &shared.ArticleSnapshot{ID: articleID, Name: "Grinder Burr Set", UnitPriceCents: 9900, Active: true}
		m.reads.EXPECT().UserByID(ctx, agentID).Return(agent, nil)
		m.reads.EXPECT().BuyerByID(ctx, buyerID).Return(&shared.BuyerSnapshot{ID: buyerID}, nil)
		m.reads.EXPECT().ArticleByID(ctx, articleID).Return(expensive, nil)

		var created *request.Request
		m.requests.EXPECT().Create(ctx, nil, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req *request.Request) (uuid.UUID, error) {
				created = req
				return req.ID(), nil
			})
		m.events.EXPECT().AddRequestEvent(ctx, nil, gomock.Any(), agentID, "request_created", gomock.Any()).Return(nil)
		m.notifs.EXPECT().CreateJob(ctx, nil, "email", "request_created", gomock.Any(), gomock.Any()).Return(nil)
		m.queries.EXPECT().GetByIDSystem(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
				return &queries.RequestView{ID: id}, nil
			})

		bigOrder := dto
		bigOrder.Lines = []reqdto.LineInput{{ArticleID: articleID, Quantity: 3, DiscountPct: 0}}

		_, err := m.newCommands().CreateRequest(ctx, bigOrder, agentID, nil)
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, int64(29700), created.Amount().Cents())
		assert.Equal(t, request.TierSalesDirector, created.RequiredTier())
		assert.Nil(t, created.AssigneeID())
		assert.Equal(t, request.ReasonNone, created.AssignmentReason())
	})
}
