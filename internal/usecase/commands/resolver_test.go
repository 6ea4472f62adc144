//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/shared"
	sharedmock "fin-approvals/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func notFoundErr() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}

func leadSnapshot(id, divisionID uuid.UUID, role user.Role, active bool) *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:         id,
		Role:       role,
		DivisionID: &divisionID,
		Active:     active,
	}
}

func TestAssigneeResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	divisionID := uuid.New()
	preferredID := uuid.New()
	defaultLeadID := uuid.New()
	firstLeadID := uuid.New()
	managerID := uuid.New()

	agentWithPreference := &shared.UserSnapshot{
		ID:              uuid.New(),
		Role:            user.RoleAgent,
		DivisionID:      &divisionID,
		PreferredLeadID: &preferredID,
		Active:          true,
	}
	agentPlain := &shared.UserSnapshot{
		ID:         uuid.New(),
		Role:       user.RoleAgent,
		DivisionID: &divisionID,
		Active:     true,
	}

	testCases := []struct {
		name           string
		agent          *shared.UserSnapshot
		tier           request.Tier
		setupMock      func(reads *sharedmock.MockCommandReads)
		expectAssignee *uuid.UUID
		expectReason   request.AssignmentReason
		expectErr      bool
	}{
		{
			name:         "higher tier is never pinned",
			agent:        agentWithPreference,
			tier:         request.TierDivisionManager,
			setupMock:    func(reads *sharedmock.MockCommandReads) {},
			expectReason: request.ReasonNone,
		},
		{
			name: "agent without division gets no assignee",
			agent: &shared.UserSnapshot{
				ID:     uuid.New(),
				Role:   user.RoleAgent,
				Active: true,
			},
			tier:         request.TierTeamLead,
			setupMock:    func(reads *sharedmock.MockCommandReads) {},
			expectReason: request.ReasonNone,
		},
		{
			name:  "preferred lead wins when eligible",
			agent: agentWithPreference,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().UserByID(ctx, preferredID).
					Return(leadSnapshot(preferredID, divisionID, user.RoleTeamLead, true), nil)
			},
			expectAssignee: &preferredID,
			expectReason:   request.ReasonAgentPreference,
		},
		{
			name:  "inactive preferred lead falls through to division default",
			agent: agentWithPreference,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().UserByID(ctx, preferredID).
					Return(leadSnapshot(preferredID, divisionID, user.RoleTeamLead, false), nil)
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID, DefaultTeamLeadID: &defaultLeadID}, nil)
				reads.EXPECT().UserByID(ctx, defaultLeadID).
					Return(leadSnapshot(defaultLeadID, divisionID, user.RoleTeamLead, true), nil)
			},
			expectAssignee: &defaultLeadID,
			expectReason:   request.ReasonDivisionDefault,
		},
		{
			name:  "preferred lead in another division is skipped",
			agent: agentWithPreference,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().UserByID(ctx, preferredID).
					Return(leadSnapshot(preferredID, uuid.New(), user.RoleTeamLead, true), nil)
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID, DefaultTeamLeadID: &defaultLeadID}, nil)
				reads.EXPECT().UserByID(ctx, defaultLeadID).
					Return(leadSnapshot(defaultLeadID, divisionID, user.RoleTeamLead, true), nil)
			},
			expectAssignee: &defaultLeadID,
			expectReason:   request.ReasonDivisionDefault,
		},
		{
			name:  "missing preferred lead row falls through",
			agent: agentWithPreference,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().UserByID(ctx, preferredID).Return(nil, notFoundErr())
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID}, nil)
				reads.EXPECT().FirstTeamLeadInDivision(ctx, divisionID).Return(&firstLeadID, nil)
			},
			expectAssignee: &firstLeadID,
			expectReason:   request.ReasonFirstInDivision,
		},
		{
			name:  "first lead in division when no default is set",
			agent: agentPlain,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID}, nil)
				reads.EXPECT().FirstTeamLeadInDivision(ctx, divisionID).Return(&firstLeadID, nil)
			},
			expectAssignee: &firstLeadID,
			expectReason:   request.ReasonFirstInDivision,
		},
		{
			name:  "division manager fallback when no leads exist",
			agent: agentPlain,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID}, nil)
				reads.EXPECT().FirstTeamLeadInDivision(ctx, divisionID).Return(nil, nil)
				reads.EXPECT().DivisionManagerInDivision(ctx, divisionID).Return(&managerID, nil)
			},
			expectAssignee: &managerID,
			expectReason:   request.ReasonDivisionManagerFallback,
		},
		{
			name:  "empty division yields unassigned request",
			agent: agentPlain,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().DivisionByID(ctx, divisionID).
					Return(&shared.DivisionSnapshot{ID: divisionID}, nil)
				reads.EXPECT().FirstTeamLeadInDivision(ctx, divisionID).Return(nil, nil)
				reads.EXPECT().DivisionManagerInDivision(ctx, divisionID).Return(nil, nil)
			},
			expectReason: request.ReasonNone,
		},
		{
			name:  "database failure stops the chain",
			agent: agentWithPreference,
			tier:  request.TierTeamLead,
			setupMock: func(reads *sharedmock.MockCommandReads) {
				reads.EXPECT().UserByID(ctx, preferredID).
					Return(nil, infra.WrapRepoErr("lookup failed", errors.New("connection reset")))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reads := sharedmock.NewMockCommandReads(ctrl)
			tc.setupMock(reads)

			resolver := commands.NewAssigneeResolver()
			assigneeID, reason, err := resolver.Resolve(ctx, reads, tc.agent, tc.tier)

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectReason, reason)
			if tc.expectAssignee == nil {
				assert.Nil(t, assigneeID)
			} else {
				require.NotNil(t, assigneeID)
				assert.Equal(t, *tc.expectAssignee, *assigneeID)
			}
		})
	}
}
