package timesheet

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"tempora.com/tempora/web/common"
	"tempora.com/tempora/workflow/model"
)

func (ep *Endpoint) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewerID, ok := actorID(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	entries, err := ep.svc.HistoryFor(db, id, viewerID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toHistoryDTOs(entries)))
}

// ExportHistory renders the audit trail as a spreadsheet download.
func (ep *Endpoint) ExportHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewerID, ok := actorID(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	entries, err := ep.svc.HistoryFor(db, id, viewerID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	f, err := historyWorkbook(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("timesheet-%d-history.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func historyWorkbook(entries []model.TimesheetWorkflowHistory) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"When", "Stage", "Action", "Actor", "Comment"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range entries {
		actor := fmt.Sprintf("%s %s", e.Actor.FirstName, e.Actor.Surname)
		if e.Actor.EmployeeID == 0 {
			actor = fmt.Sprintf("employee %d", e.ActorID)
		}
		comment := ""
		if e.Comment != nil {
			comment = *e.Comment
		}
		values := []interface{}{
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			string(e.Stage),
			string(e.Action),
			actor,
			comment,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
