package timesheet

import (
	"time"

	"tempora.com/tempora/web/common"
	"tempora.com/tempora/workflow"
	"tempora.com/tempora/workflow/model"
)

type RowDTO struct {
	ProjectID   int32     `json:"projectId" binding:"required"`
	Task        string    `json:"task" binding:"required"`
	Hours       []float64 `json:"hours" binding:"required,len=7"`
	Achievement string    `json:"achievement"`
}

type DraftDTO struct {
	PeriodStart *common.DateOnly `json:"periodStart" binding:"required"`
	Rows        []RowDTO         `json:"rows"`
}

type DecisionDTO struct {
	Comment *string `json:"comment,omitempty"`
}

type RejectDTO struct {
	Comment string `json:"comment" binding:"required"`
}

type ReopenDTO struct {
	Comment string `json:"comment"`
}

type MessageDTO struct {
	Body     string `json:"body" binding:"required"`
	ParentID *int32 `json:"parentId,omitempty"`
}

type EmployeeDTO struct {
	ID        int32  `json:"id"`
	Code      string `json:"code"`
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
}

type TimesheetRowDTO struct {
	ID          int32     `json:"id"`
	ProjectID   int32     `json:"projectId"`
	Task        string    `json:"task"`
	Hours       []float64 `json:"hours"`
	Achievement string    `json:"achievement"`
}

type ApprovalDTO struct {
	ID         int32       `json:"id"`
	ApproverID int32       `json:"approverId"`
	Approver   EmployeeDTO `json:"approver"`
	Stage      string      `json:"stage"`
	Status     string      `json:"status"`
	Comment    *string     `json:"comment,omitempty"`
	DecidedAt  *time.Time  `json:"decidedAt,omitempty"`
}

type TimesheetDTO struct {
	ID            int32       `json:"id"`
	Employee      EmployeeDTO `json:"employee"`
	PeriodStart   string      `json:"periodStart"`
	PeriodEnd     string      `json:"periodEnd"`
	OverallStatus string      `json:"overallStatus"`
	SubmittedAt   *time.Time  `json:"submittedAt,omitempty"`
	ReviewedAt    *time.Time  `json:"reviewedAt,omitempty"`
}

type TimesheetDetailDTO struct {
	TimesheetDTO
	Rows      []TimesheetRowDTO `json:"rows"`
	Approvals []ApprovalDTO     `json:"approvals"`
}

type HistoryEntryDTO struct {
	ID        int32       `json:"id"`
	Stage     string      `json:"stage"`
	Action    string      `json:"action"`
	ActorID   int32       `json:"actorId"`
	Actor     EmployeeDTO `json:"actor"`
	Comment   *string     `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ChatMessageDTO struct {
	ID         int32            `json:"id"`
	ParentID   *int32           `json:"parentId,omitempty"`
	SenderID   int32            `json:"senderId"`
	Sender     EmployeeDTO      `json:"sender"`
	SenderRole string           `json:"senderRole"`
	Body       string           `json:"body"`
	CreatedAt  time.Time        `json:"createdAt"`
	Replies    []ChatMessageDTO `json:"replies"`
}

type PendingApprovalDTO struct {
	ApprovalID int32        `json:"approvalId"`
	Stage      string       `json:"stage"`
	Timesheet  TimesheetDTO `json:"timesheet"`
}

func toEmployeeDTO(e model.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.EmployeeID,
		Code:      e.Code,
		FirstName: e.FirstName,
		Surname:   e.Surname,
	}
}

func toTimesheetDTO(ts model.Timesheet) TimesheetDTO {
	return TimesheetDTO{
		ID:            ts.ID,
		Employee:      toEmployeeDTO(ts.Employee),
		PeriodStart:   ts.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     ts.PeriodEnd.Format("2006-01-02"),
		OverallStatus: string(ts.OverallStatus),
		SubmittedAt:   ts.SubmittedAt,
		ReviewedAt:    ts.ReviewedAt,
	}
}

func toDetailDTO(status *workflow.WorkflowStatus) TimesheetDetailDTO {
	dto := TimesheetDetailDTO{
		TimesheetDTO: toTimesheetDTO(status.Timesheet),
		Rows:         make([]TimesheetRowDTO, 0, len(status.Rows)),
		Approvals:    make([]ApprovalDTO, 0, len(status.Approvals)),
	}
	for _, r := range status.Rows {
		hours := r.DayHours()
		dto.Rows = append(dto.Rows, TimesheetRowDTO{
			ID:          r.ID,
			ProjectID:   r.ProjectID,
			Task:        r.Task,
			Hours:       hours[:],
			Achievement: r.Achievement,
		})
	}
	for _, a := range status.Approvals {
		dto.Approvals = append(dto.Approvals, toApprovalDTO(a))
	}
	return dto
}

func toApprovalDTO(a model.TimesheetApproval) ApprovalDTO {
	return ApprovalDTO{
		ID:         a.ID,
		ApproverID: a.ApproverID,
		Approver:   toEmployeeDTO(a.Approver),
		Stage:      string(a.Stage),
		Status:     string(a.Status),
		Comment:    a.Comment,
		DecidedAt:  a.DecidedAt,
	}
}

func toHistoryDTOs(entries []model.TimesheetWorkflowHistory) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, HistoryEntryDTO{
			ID:        e.ID,
			Stage:     string(e.Stage),
			Action:    string(e.Action),
			ActorID:   e.ActorID,
			Actor:     toEmployeeDTO(e.Actor),
			Comment:   e.Comment,
			CreatedAt: e.CreatedAt,
		})
	}
	return dtos
}

func toChatDTOs(msgs []*model.TimesheetChatMessage) []ChatMessageDTO {
	dtos := make([]ChatMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, ChatMessageDTO{
			ID:         m.ID,
			ParentID:   m.ParentID,
			SenderID:   m.SenderID,
			Sender:     toEmployeeDTO(m.Sender),
			SenderRole: string(m.SenderRole),
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
			Replies:    toChatDTOs(m.Replies),
		})
	}
	return dtos
}
