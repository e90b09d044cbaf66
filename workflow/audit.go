package workflow

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tempora.com/tempora/workflow/model"
)

// appendHistory writes one immutable audit entry inside the caller's
// transaction. History is never read-modify-written and never deleted.
func appendHistory(db *gorm.DB, timesheetID int32, stage model.Stage, action model.Action, actorID int32, comment *string) error {
	entry := model.TimesheetWorkflowHistory{
		TimesheetID: timesheetID,
		Stage:       stage,
		Action:      action,
		ActorID:     actorID,
		Comment:     comment,
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("append workflow history: %w", err)
	}
	return nil
}

// appendEntries writes a batch of audit entries in their slice order.
func appendEntries(db *gorm.DB, entries []model.TimesheetWorkflowHistory) error {
	if err := db.Create(&entries).Error; err != nil {
		return fmt.Errorf("append workflow history: %w", err)
	}
	return nil
}

// HistoryFor returns the full audit trail for a timesheet, oldest first,
// guarded by the participant predicate: the trail carries rejection
// comments and is no more public than the timesheet detail. Entries are
// ordered by insertion, which under the per-timesheet lock is also commit
// order.
func (s *Service) HistoryFor(db *gorm.DB, timesheetID, viewerID int32) ([]model.TimesheetWorkflowHistory, error) {
	ts, err := findTimesheet(db, timesheetID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(db, viewerID, ts); err != nil {
		return nil, err
	}
	var entries []model.TimesheetWorkflowHistory
	err = db.Preload("Actor").
		Where("timesheet_id = ?", timesheetID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// lastRejection returns the most recent rejection entry, nil if the
// timesheet was never rejected. Approval rows get deleted on reopen, so the
// history is the durable place to ask who rejected last.
func lastRejection(db *gorm.DB, timesheetID int32) (*model.TimesheetWorkflowHistory, error) {
	var entry model.TimesheetWorkflowHistory
	err := db.Where("timesheet_id = ? AND action = ?", timesheetID, model.ActionRejected).
		Order("id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
