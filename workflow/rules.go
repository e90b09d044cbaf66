package workflow

import (
	"time"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

// Pure state-machine decisions. Everything here operates on rows the
// operation has already loaded under its transaction locks; nothing in this
// file touches the database.

// submitGuard checks that employeeID may submit ts right now.
func submitGuard(ts *model.Timesheet, employeeID int32, rowCount int) error {
	if ts.EmployeeID != employeeID {
		return Forbiddenf("timesheet %d does not belong to employee %d", ts.ID, employeeID)
	}
	if !ts.OverallStatus.Editable() {
		return Conflictf("timesheet %d is %s and cannot be submitted", ts.ID, ts.OverallStatus)
	}
	if rowCount == 0 {
		return Validationf("cannot submit a timesheet with no rows")
	}
	return nil
}

// decisionGuard checks that a decision can still be recorded against ts.
func decisionGuard(ts *model.Timesheet) error {
	if ts.OverallStatus != model.StatusInReview {
		return Conflictf("timesheet %d is %s, not in review", ts.ID, ts.OverallStatus)
	}
	return nil
}

// applySubmission moves ts into review, or straight to approved when the
// whole chain is vacant, and returns the history entries to append, in
// order. The caller creates pending approvals only for a non-auto plan, so
// an auto-approved timesheet ends with zero approval rows.
func applySubmission(ts *model.Timesheet, plan stagePlan, employeeID int32, now time.Time) []model.TimesheetWorkflowHistory {
	ts.SubmittedAt = &now
	if plan.AutoApproved {
		ts.OverallStatus = model.StatusApproved
		ts.ReviewedAt = &now
		return []model.TimesheetWorkflowHistory{
			{TimesheetID: ts.ID, Stage: model.StageGM, Action: model.ActionSubmitted, ActorID: employeeID},
			{TimesheetID: ts.ID, Stage: model.StageGM, Action: model.ActionApproved, ActorID: employeeID, Comment: utils.Ptr(plan.Reason)},
		}
	}
	ts.OverallStatus = model.StatusInReview
	return []model.TimesheetWorkflowHistory{
		{TimesheetID: ts.ID, Stage: plan.Stage, Action: model.ActionSubmitted, ActorID: employeeID},
	}
}

// pendingAt counts still-pending slots at one stage. A stage advances only
// once this reaches zero.
func pendingAt(approvals []model.TimesheetApproval, stage model.Stage) int {
	n := 0
	for _, a := range approvals {
		if a.Stage == stage && a.Status == model.ApprovalPending {
			n++
		}
	}
	return n
}

// closePending force-closes every still-pending slot, at any stage, and
// returns the rows that changed. After a rejection no slot may stay
// pending.
func closePending(approvals []model.TimesheetApproval, now time.Time) []model.TimesheetApproval {
	var closed []model.TimesheetApproval
	for _, a := range approvals {
		if a.Status != model.ApprovalPending {
			continue
		}
		a.Status = model.ApprovalAutoClosed
		a.DecidedAt = &now
		closed = append(closed, a)
	}
	return closed
}

// reopenGuard checks that actorID may reopen ts: only rejected timesheets
// reopen, and only by a manager or the approver who rejected it last.
func reopenGuard(ts *model.Timesheet, rejection *model.TimesheetWorkflowHistory, actorID int32, isManager bool) error {
	if ts.OverallStatus != model.StatusRejected {
		return Conflictf("timesheet %d is %s; only rejected timesheets can be reopened", ts.ID, ts.OverallStatus)
	}
	if rejection != nil && rejection.ActorID == actorID {
		return nil
	}
	if isManager {
		return nil
	}
	return Forbiddenf("employee %d may not reopen timesheet %d", actorID, ts.ID)
}

// reopenStageOf picks the stage the reopen entry is recorded at: the stage
// of the rejection that caused it, gm when the history carries none.
func reopenStageOf(rejection *model.TimesheetWorkflowHistory) model.Stage {
	if rejection != nil {
		return rejection.Stage
	}
	return model.StageGM
}

// missingSlotError classifies a missing pending slot: a slot that exists
// but was already decided means the caller lost a race, no slot at all
// means the caller was never an approver here.
func missingSlotError(timesheetID, approverID int32, everAssigned bool) error {
	if everAssigned {
		return Conflictf("approval by employee %d on timesheet %d is no longer pending", approverID, timesheetID)
	}
	return Forbiddenf("employee %d has no pending approval on timesheet %d", approverID, timesheetID)
}
