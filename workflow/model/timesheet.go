package model

import "time"

// Timesheet is one (employee, calendar week) period. There is at most one
// row per (employee, period_start); resubmissions reuse the same row.
type Timesheet struct {
	ID            int32      `gorm:"primaryKey;column:id"`
	EmployeeID    int32      `gorm:"column:employee_id;not null;uniqueIndex:idx_ts_employee_period"`
	PeriodStart   time.Time  `gorm:"column:period_start;type:date;not null;uniqueIndex:idx_ts_employee_period"`
	PeriodEnd     time.Time  `gorm:"column:period_end;type:date;not null"`
	OverallStatus Status     `gorm:"column:overall_status;type:varchar(20);not null"`
	SubmittedAt   *time.Time `gorm:"column:submitted_at"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`

	Employee  Employee            `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
	Rows      []TimesheetRow      `gorm:"foreignKey:TimesheetID;references:ID"`
	Approvals []TimesheetApproval `gorm:"foreignKey:TimesheetID;references:ID"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// TimesheetRow is one (project, task) line with seven day-buckets of hours.
// Rows are replaced wholesale on every draft save and frozen once submitted.
type TimesheetRow struct {
	ID          int32  `gorm:"primaryKey;column:id"`
	TimesheetID int32  `gorm:"column:timesheet_id;not null;uniqueIndex:idx_row_project_task"`
	ProjectID   int32  `gorm:"column:project_id;not null;uniqueIndex:idx_row_project_task"`
	Task        string `gorm:"column:task;type:varchar(200);not null;uniqueIndex:idx_row_project_task"`

	MonHours float64 `gorm:"column:mon_hours;type:decimal(4,2);not null"`
	TueHours float64 `gorm:"column:tue_hours;type:decimal(4,2);not null"`
	WedHours float64 `gorm:"column:wed_hours;type:decimal(4,2);not null"`
	ThuHours float64 `gorm:"column:thu_hours;type:decimal(4,2);not null"`
	FriHours float64 `gorm:"column:fri_hours;type:decimal(4,2);not null"`
	SatHours float64 `gorm:"column:sat_hours;type:decimal(4,2);not null"`
	SunHours float64 `gorm:"column:sun_hours;type:decimal(4,2);not null"`

	Achievement string `gorm:"column:achievement;type:text"`

	Project Project `gorm:"foreignKey:ProjectID;references:ProjectID"`
}

func (TimesheetRow) TableName() string {
	return "timesheet_rows"
}

// DayHours returns the seven buckets in Monday-first order.
func (r *TimesheetRow) DayHours() [7]float64 {
	return [7]float64{r.MonHours, r.TueHours, r.WedHours, r.ThuHours, r.FriHours, r.SatHours, r.SunHours}
}
