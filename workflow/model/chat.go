package model

import "time"

// TimesheetChatMessage is one message in the discussion thread attached to a
// timesheet. Messages are append-only and survive every workflow transition.
// SenderRole is the sender's relationship to the timesheet at posting time.
type TimesheetChatMessage struct {
	ID          int32    `gorm:"primaryKey;column:id"`
	TimesheetID int32    `gorm:"column:timesheet_id;not null;index"`
	ParentID    *int32   `gorm:"column:parent_id"`
	SenderID    int32    `gorm:"column:sender_id;not null"`
	SenderRole  ChatRole `gorm:"column:sender_role;type:varchar(10);not null"`
	Body        string   `gorm:"column:body;type:text;not null"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`

	Sender Employee `gorm:"foreignKey:SenderID;references:EmployeeID"`

	// Replies is populated when the thread is assembled; not a column.
	Replies []*TimesheetChatMessage `gorm:"-"`
}

func (TimesheetChatMessage) TableName() string {
	return "timesheet_chat_messages"
}
