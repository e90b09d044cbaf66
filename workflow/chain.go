package workflow

import (
	"fmt"

	"gorm.io/gorm"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

// stagePlan is the outcome of resolving approvers for one stage. Either
// Approvers is the non-empty set to create pending rows for at Stage, or
// AutoApproved is set because the whole remaining chain is vacant.
type stagePlan struct {
	Stage        model.Stage
	Approvers    []int32
	AutoApproved bool
	Reason       string
}

// resolveStage walks the escalation order pm → dm → gm starting at `from`
// and returns the first stage with at least one eligible approver. When no
// stage has one, the plan is an auto-approval and Reason records which
// stages were vacant. A person qualifying at several stages gets a separate
// slot at each; stages are never collapsed across people.
func resolveStage(db *gorm.DB, dir Directory, ts *model.Timesheet, rows []model.TimesheetRow, from model.Stage) (stagePlan, error) {
	skipped := make([]model.Stage, 0, 3)

	for stage, ok := from, true; ok; stage, ok = stage.Next() {
		approvers, err := stageApprovers(db, dir, ts, rows, stage)
		if err != nil {
			return stagePlan{}, err
		}
		if len(approvers) > 0 {
			return stagePlan{Stage: stage, Approvers: approvers}, nil
		}
		skipped = append(skipped, stage)
	}

	return stagePlan{
		AutoApproved: true,
		Reason:       fmt.Sprintf("auto-approved: no eligible approver at %s", stageList(skipped)),
	}, nil
}

func stageApprovers(db *gorm.DB, dir Directory, ts *model.Timesheet, rows []model.TimesheetRow, stage model.Stage) ([]int32, error) {
	switch stage {
	case model.StagePM:
		projectIDs := utils.Unique(utils.Map(rows, func(r model.TimesheetRow) int32 {
			return r.ProjectID
		}))
		return dir.ProjectManagers(db, projectIDs)
	case model.StageDM:
		deptID, err := dir.DepartmentOf(db, ts.EmployeeID)
		if err != nil {
			return nil, err
		}
		if deptID == nil {
			return nil, nil
		}
		return dir.DepartmentManagers(db, *deptID)
	case model.StageGM:
		return dir.GeneralManagers(db)
	}
	return nil, fmt.Errorf("unknown stage %q", stage)
}

func stageList(stages []model.Stage) string {
	s := ""
	for i, st := range stages {
		if i > 0 {
			s += ", "
		}
		s += string(st)
	}
	return s
}

// newPendingApprovals builds the approval rows for a resolved stage.
func newPendingApprovals(ts *model.Timesheet, plan stagePlan) []model.TimesheetApproval {
	return utils.Map(plan.Approvers, func(approverID int32) model.TimesheetApproval {
		return model.TimesheetApproval{
			TimesheetID: ts.ID,
			ApproverID:  approverID,
			Stage:       plan.Stage,
			Status:      model.ApprovalPending,
		}
	})
}
