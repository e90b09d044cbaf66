package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

type stubDirectory struct {
	projectManagers    map[int32][]int32
	departmentManagers map[int32][]int32
	generalManagers    []int32
	departments        map[int32]*int32
}

func (d stubDirectory) ProjectManagers(_ *gorm.DB, projectIDs []int32) ([]int32, error) {
	var ids []int32
	for _, p := range projectIDs {
		ids = append(ids, d.projectManagers[p]...)
	}
	return utils.Unique(ids), nil
}

func (d stubDirectory) DepartmentManagers(_ *gorm.DB, departmentID int32) ([]int32, error) {
	return d.departmentManagers[departmentID], nil
}

func (d stubDirectory) GeneralManagers(_ *gorm.DB) ([]int32, error) {
	return d.generalManagers, nil
}

func (d stubDirectory) DepartmentOf(_ *gorm.DB, employeeID int32) (*int32, error) {
	return d.departments[employeeID], nil
}

func (d stubDirectory) IsManager(_ *gorm.DB, employeeID int32) (bool, error) {
	for _, ids := range d.projectManagers {
		if utils.Contains(ids, employeeID) {
			return true, nil
		}
	}
	for _, ids := range d.departmentManagers {
		if utils.Contains(ids, employeeID) {
			return true, nil
		}
	}
	return utils.Contains(d.generalManagers, employeeID), nil
}

func rowsFor(projectIDs ...int32) []model.TimesheetRow {
	rows := make([]model.TimesheetRow, 0, len(projectIDs))
	for _, p := range projectIDs {
		rows = append(rows, model.TimesheetRow{ProjectID: p, Task: "dev"})
	}
	return rows
}

func TestResolveStage(t *testing.T) {
	ts := &model.Timesheet{ID: 1, EmployeeID: 100}

	tests := []struct {
		name          string
		dir           stubDirectory
		rows          []model.TimesheetRow
		from          model.Stage
		wantStage     model.Stage
		wantApprovers []int32
		wantAuto      bool
	}{
		{
			name: "two PMs on one project",
			dir: stubDirectory{
				projectManagers: map[int32][]int32{10: {200, 201}},
			},
			rows:          rowsFor(10),
			from:          model.StagePM,
			wantStage:     model.StagePM,
			wantApprovers: []int32{200, 201},
		},
		{
			name: "same PM across two projects is deduplicated",
			dir: stubDirectory{
				projectManagers: map[int32][]int32{10: {200}, 11: {200}},
			},
			rows:          rowsFor(10, 11),
			from:          model.StagePM,
			wantStage:     model.StagePM,
			wantApprovers: []int32{200},
		},
		{
			name: "no PM escalates to DM",
			dir: stubDirectory{
				departments:        map[int32]*int32{100: utils.Ptr(int32(1))},
				departmentManagers: map[int32][]int32{1: {300}},
			},
			rows:          rowsFor(10),
			from:          model.StagePM,
			wantStage:     model.StageDM,
			wantApprovers: []int32{300},
		},
		{
			name: "no PM or DM escalates to GM",
			dir: stubDirectory{
				departments:     map[int32]*int32{100: utils.Ptr(int32(1))},
				generalManagers: []int32{400},
			},
			rows:          rowsFor(10),
			from:          model.StagePM,
			wantStage:     model.StageGM,
			wantApprovers: []int32{400},
		},
		{
			name: "employee without department skips DM",
			dir: stubDirectory{
				generalManagers: []int32{400},
			},
			rows:          rowsFor(10),
			from:          model.StagePM,
			wantStage:     model.StageGM,
			wantApprovers: []int32{400},
		},
		{
			name:     "nobody anywhere auto-approves",
			dir:      stubDirectory{},
			rows:     rowsFor(10),
			from:     model.StagePM,
			wantAuto: true,
		},
		{
			name: "advancement from DM resolves DM first",
			dir: stubDirectory{
				// one person manages both a project and the department;
				// stages never collapse across people
				projectManagers:    map[int32][]int32{10: {300}},
				departments:        map[int32]*int32{100: utils.Ptr(int32(1))},
				departmentManagers: map[int32][]int32{1: {300}},
			},
			rows:          nil,
			from:          model.StageDM,
			wantStage:     model.StageDM,
			wantApprovers: []int32{300},
		},
		{
			name: "advancement past a vacant GM auto-approves",
			dir: stubDirectory{
				projectManagers: map[int32][]int32{10: {200}},
			},
			rows:     nil,
			from:     model.StageDM,
			wantAuto: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := resolveStage(nil, tt.dir, ts, tt.rows, tt.from)
			require.NoError(t, err)

			if tt.wantAuto {
				assert.True(t, plan.AutoApproved)
				assert.Empty(t, plan.Approvers)
				assert.NotEmpty(t, plan.Reason)
				return
			}
			assert.False(t, plan.AutoApproved)
			assert.Equal(t, tt.wantStage, plan.Stage)
			assert.Equal(t, tt.wantApprovers, plan.Approvers)
		})
	}
}

func TestResolveStageVacancyReasonListsSkippedStages(t *testing.T) {
	ts := &model.Timesheet{ID: 1, EmployeeID: 100}

	plan, err := resolveStage(nil, stubDirectory{}, ts, rowsFor(10), model.StagePM)
	require.NoError(t, err)

	assert.True(t, plan.AutoApproved)
	assert.Equal(t, "auto-approved: no eligible approver at pm, dm, gm", plan.Reason)
}

func TestNewPendingApprovals(t *testing.T) {
	ts := &model.Timesheet{ID: 7, EmployeeID: 100}
	plan := stagePlan{Stage: model.StagePM, Approvers: []int32{200, 201}}

	approvals := newPendingApprovals(ts, plan)

	require.Len(t, approvals, 2)
	for i, approverID := range []int32{200, 201} {
		assert.Equal(t, int32(7), approvals[i].TimesheetID)
		assert.Equal(t, approverID, approvals[i].ApproverID)
		assert.Equal(t, model.StagePM, approvals[i].Stage)
		assert.Equal(t, model.ApprovalPending, approvals[i].Status)
	}
}
