package model

// Status is the overall lifecycle state of a timesheet.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReopened Status = "reopened"
	StatusInReview Status = "in_review"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Editable reports whether the employee may still change rows. These are
// also the only states a timesheet can be submitted from.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusReopened
}

// Terminal reports whether the current review cycle has ended.
// Rejected timesheets can still be reopened.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Stage is one step in the approval escalation order.
type Stage string

const (
	StagePM Stage = "pm"
	StageDM Stage = "dm"
	StageGM Stage = "gm"
)

// Next returns the stage that follows s. ok is false for the last stage.
func (s Stage) Next() (next Stage, ok bool) {
	switch s {
	case StagePM:
		return StageDM, true
	case StageDM:
		return StageGM, true
	}
	return "", false
}

// ApprovalStatus is the state of a single approval row.
type ApprovalStatus string

const (
	ApprovalPending    ApprovalStatus = "pending"
	ApprovalApproved   ApprovalStatus = "approved"
	ApprovalRejected   ApprovalStatus = "rejected"
	ApprovalAutoClosed ApprovalStatus = "auto_closed"
)

// Action is a workflow history entry kind.
type Action string

const (
	ActionSubmitted Action = "submitted"
	ActionApproved  Action = "approved"
	ActionRejected  Action = "rejected"
	ActionReopened  Action = "reopened"
)

// ChatRole is a sender's relationship to the timesheet at posting time.
type ChatRole string

const (
	RoleEmployee ChatRole = "employee"
	RolePM       ChatRole = "pm"
	RoleDM       ChatRole = "dm"
	RoleGM       ChatRole = "gm"
)
