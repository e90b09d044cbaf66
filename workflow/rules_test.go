package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.com/tempora/workflow/model"
)

func TestSubmitGuard(t *testing.T) {
	tests := []struct {
		name     string
		ts       model.Timesheet
		actor    int32
		rowCount int
		check    func(error) bool
		wantErr  string
	}{
		{
			name:     "owner submits a draft",
			ts:       model.Timesheet{ID: 1, EmployeeID: 100, OverallStatus: model.StatusDraft},
			actor:    100,
			rowCount: 1,
		},
		{
			name:     "owner resubmits after reopen",
			ts:       model.Timesheet{ID: 1, EmployeeID: 100, OverallStatus: model.StatusReopened},
			actor:    100,
			rowCount: 1,
		},
		{
			name:     "not the owner",
			ts:       model.Timesheet{ID: 1, EmployeeID: 100, OverallStatus: model.StatusDraft},
			actor:    200,
			rowCount: 1,
			check:    IsForbidden,
			wantErr:  "does not belong",
		},
		{
			name:     "already in review",
			ts:       model.Timesheet{ID: 1, EmployeeID: 100, OverallStatus: model.StatusInReview},
			actor:    100,
			rowCount: 1,
			check:    IsConflict,
			wantErr:  "cannot be submitted",
		},
		{
			name:    "no rows",
			ts:      model.Timesheet{ID: 1, EmployeeID: 100, OverallStatus: model.StatusDraft},
			actor:   100,
			check:   IsValidation,
			wantErr: "no rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := submitGuard(&tt.ts, tt.actor, tt.rowCount)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			assert.True(t, tt.check(err))
		})
	}
}

func TestDecisionGuard(t *testing.T) {
	assert.NoError(t, decisionGuard(&model.Timesheet{OverallStatus: model.StatusInReview}))

	err := decisionGuard(&model.Timesheet{ID: 3, OverallStatus: model.StatusRejected})
	assert.True(t, IsConflict(err))
	assert.ErrorContains(t, err, "not in review")
}

func TestApplySubmission(t *testing.T) {
	now := time.Now()

	t.Run("resolved stage moves into review", func(t *testing.T) {
		ts := &model.Timesheet{ID: 7, EmployeeID: 100, OverallStatus: model.StatusDraft}
		plan := stagePlan{Stage: model.StageDM, Approvers: []int32{300}}

		entries := applySubmission(ts, plan, 100, now)

		assert.Equal(t, model.StatusInReview, ts.OverallStatus)
		require.NotNil(t, ts.SubmittedAt)
		assert.Nil(t, ts.ReviewedAt)

		require.Len(t, entries, 1)
		assert.Equal(t, model.ActionSubmitted, entries[0].Action)
		assert.Equal(t, model.StageDM, entries[0].Stage)
		assert.Equal(t, int32(100), entries[0].ActorID)
	})

	t.Run("vacant chain approves with zero approval rows", func(t *testing.T) {
		ts := &model.Timesheet{ID: 7, EmployeeID: 100, OverallStatus: model.StatusDraft}
		plan := stagePlan{AutoApproved: true, Reason: "auto-approved: no eligible approver at pm, dm, gm"}

		entries := applySubmission(ts, plan, 100, now)

		assert.Equal(t, model.StatusApproved, ts.OverallStatus)
		require.NotNil(t, ts.ReviewedAt)
		assert.Empty(t, newPendingApprovals(ts, plan))

		require.Len(t, entries, 2)
		assert.Equal(t, model.ActionSubmitted, entries[0].Action)
		assert.Equal(t, model.ActionApproved, entries[1].Action)
		assert.Equal(t, model.StageGM, entries[1].Stage)
		require.NotNil(t, entries[1].Comment)
		assert.Equal(t, plan.Reason, *entries[1].Comment)
	})
}

func TestPendingAt(t *testing.T) {
	approvals := []model.TimesheetApproval{
		{ID: 1, Stage: model.StagePM, Status: model.ApprovalApproved},
		{ID: 2, Stage: model.StagePM, Status: model.ApprovalPending},
		{ID: 3, Stage: model.StageDM, Status: model.ApprovalPending},
	}

	// a stage only clears once none of its slots is pending
	assert.Equal(t, 1, pendingAt(approvals, model.StagePM))
	assert.Equal(t, 1, pendingAt(approvals, model.StageDM))
	assert.Equal(t, 0, pendingAt(approvals, model.StageGM))

	approvals[1].Status = model.ApprovalApproved
	assert.Equal(t, 0, pendingAt(approvals, model.StagePM))
}

func TestClosePendingLeavesNoPendingSlot(t *testing.T) {
	now := time.Now()
	approvals := []model.TimesheetApproval{
		{ID: 1, Stage: model.StagePM, Status: model.ApprovalApproved},
		{ID: 2, Stage: model.StagePM, Status: model.ApprovalRejected},
		{ID: 3, Stage: model.StagePM, Status: model.ApprovalPending},
		{ID: 4, Stage: model.StageDM, Status: model.ApprovalPending},
	}

	closed := closePending(approvals, now)

	require.Len(t, closed, 2)
	for _, a := range closed {
		assert.Equal(t, model.ApprovalAutoClosed, a.Status)
		require.NotNil(t, a.DecidedAt)
	}
	assert.Equal(t, int32(3), closed[0].ID)
	assert.Equal(t, int32(4), closed[1].ID)

	// already-decided rows are untouched
	assert.Empty(t, closePending(closed, now))
}

func TestReopenGuard(t *testing.T) {
	rejected := func() *model.Timesheet {
		return &model.Timesheet{ID: 9, EmployeeID: 100, OverallStatus: model.StatusRejected}
	}
	rejection := &model.TimesheetWorkflowHistory{Stage: model.StageDM, Action: model.ActionRejected, ActorID: 300}

	t.Run("last rejecter may reopen", func(t *testing.T) {
		assert.NoError(t, reopenGuard(rejected(), rejection, 300, false))
	})

	t.Run("manager may reopen", func(t *testing.T) {
		assert.NoError(t, reopenGuard(rejected(), rejection, 400, true))
	})

	t.Run("anyone else may not", func(t *testing.T) {
		err := reopenGuard(rejected(), rejection, 100, false)
		assert.True(t, IsForbidden(err))
	})

	t.Run("only rejected timesheets reopen", func(t *testing.T) {
		ts := &model.Timesheet{ID: 9, OverallStatus: model.StatusApproved}
		err := reopenGuard(ts, nil, 300, true)
		assert.True(t, IsConflict(err))
	})
}

func TestReopenStageOf(t *testing.T) {
	rejection := &model.TimesheetWorkflowHistory{Stage: model.StagePM}
	assert.Equal(t, model.StagePM, reopenStageOf(rejection))
	assert.Equal(t, model.StageGM, reopenStageOf(nil))
}

func TestMissingSlotError(t *testing.T) {
	// a decided slot is a lost race, not an authorization failure
	err := missingSlotError(1, 200, true)
	assert.True(t, IsConflict(err))
	assert.ErrorContains(t, err, "no longer pending")

	err = missingSlotError(1, 200, false)
	assert.True(t, IsForbidden(err))
	assert.ErrorContains(t, err, "no pending approval")
}
