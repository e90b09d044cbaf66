package workflow

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tempora.com/tempora/utils"
	"tempora.com/tempora/workflow/model"
)

const maxDayHours = 24

// Service owns the timesheet approval workflow: draft editing, submission,
// the approval chain, and reopening after rejection. Every mutating
// operation runs in one transaction that locks the timesheet row (and, for
// decisions, the approval row) before branching on current state, so racing
// actors are serialized and losers get a conflict error instead of a
// double-applied action.
type Service struct {
	dir Directory
	log *zap.Logger
}

func NewService(dir Directory, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{dir: dir, log: log}
}

// DraftRow is one line of a draft save: a (project, task) pair with seven
// day-buckets of hours, Monday first.
type DraftRow struct {
	ProjectID   int32
	Task        string
	Hours       [7]float64
	Achievement string
}

type DraftInput struct {
	EmployeeID  int32
	PeriodStart time.Time
	Rows        []DraftRow
}

func validateDraft(in DraftInput) error {
	if in.EmployeeID <= 0 {
		return Validationf("employee id is required")
	}
	if !utils.IsWeekStart(in.PeriodStart) {
		return Validationf("period must start on a Monday, got %s", utils.FormatDate(in.PeriodStart))
	}
	type rowKey struct {
		projectID int32
		task      string
	}
	seen := make(map[rowKey]struct{}, len(in.Rows))
	for _, r := range in.Rows {
		if r.ProjectID <= 0 {
			return Validationf("row project id is required")
		}
		if strings.TrimSpace(r.Task) == "" {
			return Validationf("row task is required")
		}
		key := rowKey{projectID: r.ProjectID, task: strings.TrimSpace(r.Task)}
		if _, dup := seen[key]; dup {
			return Validationf("duplicate row for project %d task %q", r.ProjectID, r.Task)
		}
		seen[key] = struct{}{}
		for _, h := range r.Hours {
			if h < 0 || h > maxDayHours {
				return Validationf("day hours must be between 0 and %d, got %v", maxDayHours, h)
			}
		}
	}
	return nil
}

// SaveDraft creates the timesheet for (employee, period) or replaces the
// rows of an existing editable one. Rows are replaced wholesale, never
// diffed. Fails with a conflict once the timesheet has left the editable
// states.
func (s *Service) SaveDraft(db *gorm.DB, in DraftInput) (*model.Timesheet, error) {
	if err := validateDraft(in); err != nil {
		return nil, err
	}

	var out *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		var ts model.Timesheet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND period_start = ?", in.EmployeeID, in.PeriodStart).
			First(&ts).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ts = model.Timesheet{
				EmployeeID:    in.EmployeeID,
				PeriodStart:   in.PeriodStart,
				PeriodEnd:     utils.WeekEnd(in.PeriodStart),
				OverallStatus: model.StatusDraft,
			}
			if err := tx.Create(&ts).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if !ts.OverallStatus.Editable() {
				return Conflictf("timesheet for week %s is %s and can no longer be edited",
					utils.FormatDate(in.PeriodStart), ts.OverallStatus)
			}
		}

		if err := tx.Where("timesheet_id = ?", ts.ID).Delete(&model.TimesheetRow{}).Error; err != nil {
			return err
		}
		if len(in.Rows) > 0 {
			rows := utils.Map(in.Rows, func(r DraftRow) model.TimesheetRow {
				return model.TimesheetRow{
					TimesheetID: ts.ID,
					ProjectID:   r.ProjectID,
					Task:        r.Task,
					MonHours:    r.Hours[0],
					TueHours:    r.Hours[1],
					WedHours:    r.Hours[2],
					ThuHours:    r.Hours[3],
					FriHours:    r.Hours[4],
					SatHours:    r.Hours[5],
					SunHours:    r.Hours[6],
					Achievement: r.Achievement,
				}
			})
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		out = &ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("draft saved",
		zap.Int32("timesheet_id", out.ID),
		zap.Int32("employee_id", in.EmployeeID),
		zap.Int("rows", len(in.Rows)))
	return out, nil
}

// Submit moves an editable timesheet into review. The chain resolver runs
// here and nowhere else: it creates pending approvals at exactly one stage,
// or auto-approves immediately when the whole chain is vacant. A
// resubmission after reopening resolves the chain from scratch.
func (s *Service) Submit(db *gorm.DB, timesheetID, employeeID int32) (*model.Timesheet, error) {
	var out *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		ts, err := lockTimesheet(tx, timesheetID)
		if err != nil {
			return err
		}
		rows, err := loadRows(tx, ts.ID)
		if err != nil {
			return err
		}
		if err := submitGuard(ts, employeeID, len(rows)); err != nil {
			return err
		}

		// a resubmission must not inherit approval rows from a prior cycle
		if err := tx.Where("timesheet_id = ?", ts.ID).Delete(&model.TimesheetApproval{}).Error; err != nil {
			return err
		}

		plan, err := resolveStage(tx, s.dir, ts, rows, model.StagePM)
		if err != nil {
			return err
		}

		entries := applySubmission(ts, plan, employeeID, time.Now())
		if !plan.AutoApproved {
			approvals := newPendingApprovals(ts, plan)
			if err := tx.Create(&approvals).Error; err != nil {
				return err
			}
		}
		if err := appendEntries(tx, entries); err != nil {
			return err
		}

		if err := tx.Save(ts).Error; err != nil {
			return err
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("timesheet submitted",
		zap.Int32("timesheet_id", out.ID),
		zap.Int32("employee_id", employeeID),
		zap.String("status", string(out.OverallStatus)))
	return out, nil
}

// Approve records one approver's approval. When it was the last pending row
// of its stage the workflow advances: the next stage is resolved, or the
// timesheet is finalized if the cleared stage was gm (or the remaining
// chain is vacant).
func (s *Service) Approve(db *gorm.DB, timesheetID, approverID int32, comment *string) (*model.Timesheet, error) {
	var out *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		ts, err := lockTimesheet(tx, timesheetID)
		if err != nil {
			return err
		}
		if err := decisionGuard(ts); err != nil {
			return err
		}

		ap, err := lockPendingApproval(tx, ts.ID, approverID)
		if err != nil {
			return err
		}

		now := time.Now()
		ap.Status = model.ApprovalApproved
		ap.DecidedAt = &now
		ap.Comment = comment
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		if err := appendHistory(tx, ts.ID, ap.Stage, model.ActionApproved, approverID, comment); err != nil {
			return err
		}

		// The advancement decision is made only after this row's new status
		// has been persisted, under the same locks, so the count can never
		// be stale.
		approvals, err := loadApprovals(tx, ts.ID)
		if err != nil {
			return err
		}
		if pendingAt(approvals, ap.Stage) == 0 {
			if err := s.advance(tx, ts, ap.Stage, approverID, now); err != nil {
				return err
			}
		}

		if err := tx.Save(ts).Error; err != nil {
			return err
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("timesheet approval recorded",
		zap.Int32("timesheet_id", out.ID),
		zap.Int32("approver_id", approverID),
		zap.String("status", string(out.OverallStatus)))
	return out, nil
}

func (s *Service) advance(tx *gorm.DB, ts *model.Timesheet, cleared model.Stage, actorID int32, now time.Time) error {
	next, ok := cleared.Next()
	if !ok {
		// gm cleared: the chain is complete
		ts.OverallStatus = model.StatusApproved
		ts.ReviewedAt = &now
		return nil
	}

	// pm never recurs past submission, so rows are not needed here
	plan, err := resolveStage(tx, s.dir, ts, nil, next)
	if err != nil {
		return err
	}
	if plan.AutoApproved {
		ts.OverallStatus = model.StatusApproved
		ts.ReviewedAt = &now
		return appendHistory(tx, ts.ID, model.StageGM, model.ActionApproved, actorID, utils.Ptr(plan.Reason))
	}

	approvals := newPendingApprovals(ts, plan)
	return tx.Create(&approvals).Error
}

// Reject records one approver's rejection and ends the review cycle: every
// other approval still pending, at any stage, is force-closed so nobody can
// approve a timesheet a reviewer has already rejected.
func (s *Service) Reject(db *gorm.DB, timesheetID, approverID int32, comment string) (*model.Timesheet, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, Validationf("a rejection comment is required")
	}

	var out *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		ts, err := lockTimesheet(tx, timesheetID)
		if err != nil {
			return err
		}
		if err := decisionGuard(ts); err != nil {
			return err
		}

		ap, err := lockPendingApproval(tx, ts.ID, approverID)
		if err != nil {
			return err
		}

		now := time.Now()
		ap.Status = model.ApprovalRejected
		ap.DecidedAt = &now
		ap.Comment = &comment
		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		approvals, err := loadApprovals(tx, ts.ID)
		if err != nil {
			return err
		}
		closed := closePending(approvals, now)
		for i := range closed {
			if err := tx.Save(&closed[i]).Error; err != nil {
				return err
			}
		}

		ts.OverallStatus = model.StatusRejected
		ts.ReviewedAt = &now
		if err := tx.Save(ts).Error; err != nil {
			return err
		}
		if err := appendHistory(tx, ts.ID, ap.Stage, model.ActionRejected, approverID, &comment); err != nil {
			return err
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("timesheet rejected",
		zap.Int32("timesheet_id", out.ID),
		zap.Int32("approver_id", approverID))
	return out, nil
}

// Reopen clears a rejected timesheet back to an editable state. All
// approval rows are deleted; the history stays, so the prior cycle remains
// reconstructable. Allowed for managers and for the approver who rejected
// it last.
func (s *Service) Reopen(db *gorm.DB, timesheetID, actorID int32, comment string) (*model.Timesheet, error) {
	var out *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		ts, err := lockTimesheet(tx, timesheetID)
		if err != nil {
			return err
		}
		rejection, err := lastRejection(tx, ts.ID)
		if err != nil {
			return err
		}
		isManager := false
		if rejection == nil || rejection.ActorID != actorID {
			isManager, err = s.dir.IsManager(tx, actorID)
			if err != nil {
				return err
			}
		}
		if err := reopenGuard(ts, rejection, actorID, isManager); err != nil {
			return err
		}

		if err := tx.Where("timesheet_id = ?", ts.ID).Delete(&model.TimesheetApproval{}).Error; err != nil {
			return err
		}

		stage := reopenStageOf(rejection)
		var commentPtr *string
		if strings.TrimSpace(comment) != "" {
			commentPtr = &comment
		}
		if err := appendHistory(tx, ts.ID, stage, model.ActionReopened, actorID, commentPtr); err != nil {
			return err
		}

		ts.OverallStatus = model.StatusReopened
		ts.ReviewedAt = nil
		if err := tx.Save(ts).Error; err != nil {
			return err
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("timesheet reopened",
		zap.Int32("timesheet_id", out.ID),
		zap.Int32("actor_id", actorID))
	return out, nil
}

// WorkflowStatus is the read-only projection of where a timesheet sits.
type WorkflowStatus struct {
	Timesheet model.Timesheet
	Rows      []model.TimesheetRow
	Approvals []model.TimesheetApproval
}

func (s *Service) Status(db *gorm.DB, timesheetID int32) (*WorkflowStatus, error) {
	ts, err := findTimesheet(db.Preload("Employee"), timesheetID)
	if err != nil {
		return nil, err
	}
	rows, err := loadRows(db, ts.ID)
	if err != nil {
		return nil, err
	}
	var approvals []model.TimesheetApproval
	err = db.Preload("Approver").
		Where("timesheet_id = ?", ts.ID).
		Order("id").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return &WorkflowStatus{Timesheet: *ts, Rows: rows, Approvals: approvals}, nil
}

// StatusFor is Status guarded by the participant predicate: the owner,
// current or historical approvers, and managers may see the detail.
func (s *Service) StatusFor(db *gorm.DB, timesheetID, viewerID int32) (*WorkflowStatus, error) {
	ts, err := findTimesheet(db, timesheetID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(db, viewerID, ts); err != nil {
		return nil, err
	}
	return s.Status(db, timesheetID)
}

// PendingForApprover returns the approval slots awaiting the given person,
// the projection an approver's inbox is built from.
func (s *Service) PendingForApprover(db *gorm.DB, approverID int32) ([]model.TimesheetApproval, error) {
	var approvals []model.TimesheetApproval
	err := db.Preload("Timesheet").
		Preload("Timesheet.Employee").
		Where("approver_id = ? AND status = ?", approverID, model.ApprovalPending).
		Order("id").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

func findTimesheet(db *gorm.DB, id int32) (*model.Timesheet, error) {
	var ts model.Timesheet
	err := db.First(&ts, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("timesheet %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// lockTimesheet loads the timesheet under an exclusive row lock. Current
// state must only be branched on after this returns.
func lockTimesheet(tx *gorm.DB, id int32) (*model.Timesheet, error) {
	var ts model.Timesheet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ts, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("timesheet %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// lockPendingApproval loads the approver's pending slot under an exclusive
// row lock. A slot that exists but is no longer pending means the approver
// lost a race or already acted: that is a conflict, not an authorization
// failure.
func lockPendingApproval(tx *gorm.DB, timesheetID, approverID int32) (*model.TimesheetApproval, error) {
	var ap model.TimesheetApproval
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("timesheet_id = ? AND approver_id = ? AND status = ?", timesheetID, approverID, model.ApprovalPending).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var count int64
		if err := tx.Model(&model.TimesheetApproval{}).
			Where("timesheet_id = ? AND approver_id = ?", timesheetID, approverID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		return nil, missingSlotError(timesheetID, approverID, count > 0)
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func loadApprovals(tx *gorm.DB, timesheetID int32) ([]model.TimesheetApproval, error) {
	var approvals []model.TimesheetApproval
	err := tx.Where("timesheet_id = ?", timesheetID).Order("id").Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

func loadRows(db *gorm.DB, timesheetID int32) ([]model.TimesheetRow, error) {
	var rows []model.TimesheetRow
	err := db.Where("timesheet_id = ?", timesheetID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
