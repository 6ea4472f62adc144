//go:build unit

package queries_test

import (
	"context"
	"testing"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/usecase/queries"
	readstoremock "fin-approvals/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestApprovalQueries_ListPending(t *testing.T) {
	items := []*queries.RequestListItem{{ID: uuid.New()}}
	filter := queries.RequestFilter{}

	t.Run("team lead gets their assigned queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		viewerID := uuid.New()
		store.EXPECT().ListPendingAssignedTo(gomock.Any(), viewerID, filter).Return(items, nil)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: viewerID, Role: user.RoleTeamLead}, filter)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("division manager gets their division's tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		divisionID := uuid.New()
		store.EXPECT().ListPendingByTierInDivision(gomock.Any(), request.TierDivisionManager.String(), divisionID, filter).Return(items, nil)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleDivisionManager, DivisionID: &divisionID}, filter)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("division manager without a division gets an empty queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleDivisionManager}, filter)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sales director gets the top tier across divisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		store.EXPECT().ListPendingByTier(gomock.Any(), request.TierSalesDirector.String(), filter).Return(items, nil)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleSalesDirector}, filter)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("agents are not approvers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleAgent}, filter)
		assert.ErrorIs(t, err, queries.ErrNotAnApprover)
		assert.Nil(t, got)
	})

	t.Run("admins read history but hold no queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		got, err := q.ListPending(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleAdmin}, filter)
		assert.ErrorIs(t, err, queries.ErrNotAnApprover)
		assert.Nil(t, got)
	})
}

func TestApprovalQueries_History(t *testing.T) {
	items := []*queries.RequestListItem{{ID: uuid.New()}}
	filter := queries.RequestFilter{}

	t.Run("team lead sees only their own decisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		viewerID := uuid.New()
		store.EXPECT().ListDecidedBy(gomock.Any(), viewerID, filter).Return(items, nil)

		got, err := q.History(context.Background(), queries.Viewer{ID: viewerID, Role: user.RoleTeamLead}, filter)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("division manager sees their division's decisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		divisionID := uuid.New()
		store.EXPECT().ListDecidedInDivision(gomock.Any(), divisionID, filter).Return(items, nil)

		got, err := q.History(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleDivisionManager, DivisionID: &divisionID}, filter)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("sales director and admin see everything", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleSalesDirector, user.RoleAdmin} {
			ctrl := gomock.NewController(t)
			store := readstoremock.NewMockApprovalReadStore(ctrl)
			q := queries.NewApprovalQueries(store)

			store.EXPECT().ListDecided(gomock.Any(), filter).Return(items, nil)

			got, err := q.History(context.Background(), queries.Viewer{ID: uuid.New(), Role: role}, filter)
			require.NoError(t, err)
			assert.Equal(t, items, got)
		}
	})

	t.Run("agents have no history view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockApprovalReadStore(ctrl)
		q := queries.NewApprovalQueries(store)

		got, err := q.History(context.Background(), queries.Viewer{ID: uuid.New(), Role: user.RoleAgent}, filter)
		assert.ErrorIs(t, err, queries.ErrNotAnApprover)
		assert.Nil(t, got)
	})
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	t.Run("active user view is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockUserReadStore(ctrl)
		q := queries.NewUserQueries(store)

		view := &queries.AuthorizedUserView{ID: uuid.New(), Email: "agent@example.com", IsActive: true}
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := q.GetCurrentUser(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("deactivated user maps to ErrUserInactive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockUserReadStore(ctrl)
		q := queries.NewUserQueries(store)

		view := &queries.AuthorizedUserView{ID: uuid.New(), IsActive: false}
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := q.GetCurrentUser(context.Background(), view.ID)
		assert.ErrorIs(t, err, queries.ErrUserInactive)
		assert.Nil(t, got)
	})

	t.Run("missing row maps to ErrUserNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := readstoremock.NewMockUserReadStore(ctrl)
		q := queries.NewUserQueries(store)

		userID := uuid.New()
		store.EXPECT().FindByID(gomock.Any(), userID).Return(nil, notFoundErr())

		got, err := q.GetCurrentUser(context.Background(), userID)
		assert.ErrorIs(t, err, queries.ErrUserNotFound)
		assert.Nil(t, got)
	})
}
