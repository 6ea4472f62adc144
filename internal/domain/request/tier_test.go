//go:build unit

package request_test

import (
	"testing"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredTierFor(t *testing.T) {
	cases := []struct {
		name  string
		cents int64
		want  request.Tier
	}{
		{name: "zero total", cents: 0, want: request.TierTeamLead},
		{name: "just under team lead ceiling", cents: 9899, want: request.TierTeamLead},
		{name: "team lead ceiling inclusive", cents: 9900, want: request.TierTeamLead},
		{name: "one cent over team lead ceiling", cents: 9901, want: request.TierDivisionManager},
		{name: "division manager ceiling inclusive", cents: 19900, want: request.TierDivisionManager},
		{name: "one cent over division manager ceiling", cents: 19901, want: request.TierSalesDirector},
		{name: "large total", cents: 5_000_000, want: request.TierSalesDirector},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			total, err := request.NewMoney(c.cents)
			require.NoError(t, err)
			assert.Equal(t, c.want, request.RequiredTierFor(total))
		})
	}
}

func TestTierRole(t *testing.T) {
	assert.Equal(t, user.RoleTeamLead, request.TierTeamLead.Role())
	assert.Equal(t, user.RoleDivisionManager, request.TierDivisionManager.Role())
	assert.Equal(t, user.RoleSalesDirector, request.TierSalesDirector.Role())
}

func TestTierScoping(t *testing.T) {
	t.Run("division scope", func(t *testing.T) {
		assert.True(t, request.TierTeamLead.DivisionScoped())
		assert.True(t, request.TierDivisionManager.DivisionScoped())
		assert.False(t, request.TierSalesDirector.DivisionScoped())
	})

	t.Run("assignee scope", func(t *testing.T) {
		assert.True(t, request.TierTeamLead.AssigneeScoped())
		assert.False(t, request.TierDivisionManager.AssigneeScoped())
		assert.False(t, request.TierSalesDirector.AssigneeScoped())
	})
}

func TestNewTier(t *testing.T) {
	for _, valid := range []string{"team_lead", "division_manager", "sales_director"} {
		tier, err := request.NewTier(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(tier))
	}

	_, err := request.NewTier("intern")
	require.ErrorIs(t, err, request.ErrInvalidTier)
}
