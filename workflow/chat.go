package workflow

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

// The discussion thread travels with a timesheet through review but has its
// own lifecycle: messages are append-only, never edited or deleted, and
// survive rejections and reopens. Read access and post access use the same
// predicate.

// ResolveRole computes a person's role relative to one timesheet: the owner
// is the employee, a manager of any project on its rows is a pm, a manager
// of the owner's department is a dm, and a GM-role employee is a gm. The
// role is never persisted on the person; it is re-resolved per call. Rows
// already loaded on ts are used as-is.
func (s *Service) ResolveRole(db *gorm.DB, personID int32, ts *model.Timesheet) (model.ChatRole, bool, error) {
	if personID == ts.EmployeeID {
		return model.RoleEmployee, true, nil
	}

	rows := ts.Rows
	if rows == nil {
		var err error
		rows, err = loadRows(db, ts.ID)
		if err != nil {
			return "", false, err
		}
	}
	projectIDs := utils.Unique(utils.Map(rows, func(r model.TimesheetRow) int32 {
		return r.ProjectID
	}))
	pms, err := s.dir.ProjectManagers(db, projectIDs)
	if err != nil {
		return "", false, err
	}
	if utils.Contains(pms, personID) {
		return model.RolePM, true, nil
	}

	deptID, err := s.dir.DepartmentOf(db, ts.EmployeeID)
	if err != nil {
		return "", false, err
	}
	if deptID != nil {
		dms, err := s.dir.DepartmentManagers(db, *deptID)
		if err != nil {
			return "", false, err
		}
		if utils.Contains(dms, personID) {
			return model.RoleDM, true, nil
		}
	}

	gms, err := s.dir.GeneralManagers(db)
	if err != nil {
		return "", false, err
	}
	if utils.Contains(gms, personID) {
		return model.RoleGM, true, nil
	}

	return "", false, nil
}

// participantRole decides whether a person may read or post on the thread
// and with which role: the owner, anyone with a current role on the
// timesheet, a current or historical approver (the history keeps the stage
// after a reopen has cleared the approval rows), or any manager.
func (s *Service) participantRole(db *gorm.DB, personID int32, ts *model.Timesheet) (model.ChatRole, bool, error) {
	role, ok, err := s.ResolveRole(db, personID, ts)
	if err != nil || ok {
		return role, ok, err
	}

	var ap model.TimesheetApproval
	err = db.Where("timesheet_id = ? AND approver_id = ?", ts.ID, personID).
		Order("id DESC").
		First(&ap).Error
	if err == nil {
		return model.ChatRole(ap.Stage), true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}

	var entry model.TimesheetWorkflowHistory
	err = db.Where("timesheet_id = ? AND actor_id = ? AND action IN ?",
		ts.ID, personID, []model.Action{model.ActionApproved, model.ActionRejected}).
		Order("id DESC").
		First(&entry).Error
	if err == nil {
		return model.ChatRole(entry.Stage), true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}

	isManager, err := s.dir.IsManager(db, personID)
	if err != nil {
		return "", false, err
	}
	if isManager {
		return managerRole(db, s.dir, personID)
	}
	return "", false, nil
}

// requireParticipant guards every read surface with the same predicate
// that governs posting.
func (s *Service) requireParticipant(db *gorm.DB, viewerID int32, ts *model.Timesheet) error {
	_, ok, err := s.participantRole(db, viewerID, ts)
	if err != nil {
		return err
	}
	if !ok {
		return Forbiddenf("employee %d may not view timesheet %d", viewerID, ts.ID)
	}
	return nil
}

// managerRole picks the posting role for a manager with no direct
// relationship to the timesheet, by their strongest org position.
func managerRole(db *gorm.DB, dir Directory, personID int32) (model.ChatRole, bool, error) {
	gms, err := dir.GeneralManagers(db)
	if err != nil {
		return "", false, err
	}
	if utils.Contains(gms, personID) {
		return model.RoleGM, true, nil
	}
	var count int64
	if err := db.Model(&model.DepartmentManager{}).Where("employee_id = ?", personID).Count(&count).Error; err != nil {
		return "", false, err
	}
	if count > 0 {
		return model.RoleDM, true, nil
	}
	return model.RolePM, true, nil
}

// PostMessage appends a message to a timesheet's thread, threading it under
// parentID when given. The parent must belong to the same timesheet.
func (s *Service) PostMessage(db *gorm.DB, timesheetID, senderID int32, body string, parentID *int32) (*model.TimesheetChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, Validationf("message body is required")
	}

	ts, err := findTimesheet(db, timesheetID)
	if err != nil {
		return nil, err
	}

	role, ok, err := s.participantRole(db, senderID, ts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbiddenf("employee %d may not post on timesheet %d", senderID, timesheetID)
	}

	if parentID != nil {
		var parent model.TimesheetChatMessage
		err := db.First(&parent, *parentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("parent message %d not found", *parentID)
		}
		if err != nil {
			return nil, err
		}
		if parent.TimesheetID != timesheetID {
			return nil, Validationf("parent message %d belongs to a different timesheet", *parentID)
		}
	}

	msg := model.TimesheetChatMessage{
		TimesheetID: timesheetID,
		ParentID:    parentID,
		SenderID:    senderID,
		SenderRole:  role,
		Body:        body,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, err
	}

	s.log.Info("chat message posted",
		zap.Int32("timesheet_id", timesheetID),
		zap.Int32("sender_id", senderID),
		zap.String("role", string(role)))
	return &msg, nil
}

// Messages returns the thread as a tree, roots in posting order. The viewer
// must pass the same predicate that governs posting.
func (s *Service) Messages(db *gorm.DB, timesheetID, viewerID int32) ([]*model.TimesheetChatMessage, error) {
	ts, err := findTimesheet(db, timesheetID)
	if err != nil {
		return nil, err
	}

	if err := s.requireParticipant(db, viewerID, ts); err != nil {
		return nil, err
	}

	var msgs []model.TimesheetChatMessage
	err = db.Preload("Sender").
		Where("timesheet_id = ?", timesheetID).
		Order("id").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return buildThread(msgs), nil
}

// buildThread nests replies under their parents, preserving posting order.
// A reply whose parent is missing is kept as a root rather than dropped.
func buildThread(msgs []model.TimesheetChatMessage) []*model.TimesheetChatMessage {
	nodes := make(map[int32]*model.TimesheetChatMessage, len(msgs))
	ordered := make([]*model.TimesheetChatMessage, 0, len(msgs))
	for i := range msgs {
		m := msgs[i]
		m.Replies = nil
		nodes[m.ID] = &m
		ordered = append(ordered, &m)
	}

	roots := make([]*model.TimesheetChatMessage, 0, len(msgs))
	for _, m := range ordered {
		if m.ParentID != nil {
			if parent, ok := nodes[*m.ParentID]; ok {
				parent.Replies = append(parent.Replies, m)
				continue
			}
		}
		roots = append(roots, m)
	}
	return roots
}
