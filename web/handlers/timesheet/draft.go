package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/web/common"
	"tempora.com/tempora/workflow"
)

// SaveDraft creates or replaces the caller's draft for one week. Rows are
// replaced wholesale.
func (ep *Endpoint) SaveDraft(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	var dto DraftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	in := workflow.DraftInput{
		EmployeeID:  employeeID,
		PeriodStart: dto.PeriodStart.Time,
		Rows:        make([]workflow.DraftRow, 0, len(dto.Rows)),
	}
	for _, r := range dto.Rows {
		row := workflow.DraftRow{
			ProjectID:   r.ProjectID,
			Task:        r.Task,
			Achievement: r.Achievement,
		}
		copy(row.Hours[:], r.Hours)
		in.Rows = append(in.Rows, row)
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ts, err := ep.svc.SaveDraft(db, in)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimesheetDTO(*ts)))
}
