package model

import "time"

// TimesheetApproval is one approver's slot at one stage of the current
// review cycle. Rows are created only by the chain resolver, mutated in
// place by decisions, and deleted as a set when a timesheet is reopened.
type TimesheetApproval struct {
	ID          int32          `gorm:"primaryKey;column:id"`
	TimesheetID int32          `gorm:"column:timesheet_id;not null;uniqueIndex:idx_approval_slot"`
	ApproverID  int32          `gorm:"column:approver_id;not null;uniqueIndex:idx_approval_slot"`
	Stage       Stage          `gorm:"column:stage;type:varchar(2);not null;uniqueIndex:idx_approval_slot"`
	Status      ApprovalStatus `gorm:"column:status;type:varchar(20);not null"`
	Comment     *string        `gorm:"column:comment;type:text"`
	DecidedAt   *time.Time     `gorm:"column:decided_at"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`

	Approver  Employee  `gorm:"foreignKey:ApproverID;references:EmployeeID"`
	Timesheet Timesheet `gorm:"foreignKey:TimesheetID;references:ID"`
}

func (TimesheetApproval) TableName() string {
	return "timesheet_approvals"
}
