package model

import "time"

// TimesheetWorkflowHistory is the append-only audit trail. Entries are never
// updated or deleted; reopening adds to it. It remains the record of what
// happened after approval rows have been cleared by a reopen.
type TimesheetWorkflowHistory struct {
	ID          int32   `gorm:"primaryKey;column:id"`
	TimesheetID int32   `gorm:"column:timesheet_id;not null;index"`
	Stage       Stage   `gorm:"column:stage;type:varchar(2);not null"`
	Action      Action  `gorm:"column:action;type:varchar(20);not null"`
	ActorID     int32   `gorm:"column:actor_id;not null"`
	Comment     *string `gorm:"column:comment;type:text"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`

	Actor Employee `gorm:"foreignKey:ActorID;references:EmployeeID"`
}

func (TimesheetWorkflowHistory) TableName() string {
	return "timesheet_workflow_history"
}
