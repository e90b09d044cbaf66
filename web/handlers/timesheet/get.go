package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/web/common"
)

// Get returns the timesheet with its rows and the approvals of the current
// review cycle. Visible to the owner, approvers and managers.
func (ep *Endpoint) Get(c *gin.Context) {
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

	status, err := ep.svc.StatusFor(db, id, viewerID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDetailDTO(status)))
}

// Pending lists the approval slots awaiting the calling approver.
func (ep *Endpoint) Pending(c *gin.Context) {
	approverID, ok := actorID(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	approvals, err := ep.svc.PendingForApprover(db, approverID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	dtos := make([]PendingApprovalDTO, 0, len(approvals))
	for _, a := range approvals {
		dtos = append(dtos, PendingApprovalDTO{
			ApprovalID: a.ID,
			Stage:      string(a.Stage),
			Timesheet:  toTimesheetDTO(a.Timesheet),
		})
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(dtos, int64(len(dtos))))
}
