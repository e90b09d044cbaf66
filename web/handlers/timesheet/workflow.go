package timesheet

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/web/common"
)

func (ep *Endpoint) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ts, err := ep.svc.Submit(db, id, employeeID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimesheetDTO(*ts)))
}

func (ep *Endpoint) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	approverID, ok := actorID(c)
	if !ok {
		return
	}

	// the comment is optional, so an empty body is fine
	var dto DecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ts, err := ep.svc.Approve(db, id, approverID, dto.Comment)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimesheetDTO(*ts)))
}

func (ep *Endpoint) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	approverID, ok := actorID(c)
	if !ok {
		return
	}

	var dto RejectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ts, err := ep.svc.Reject(db, id, approverID, dto.Comment)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimesheetDTO(*ts)))
}

func (ep *Endpoint) Reopen(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	reopenerID, ok := actorID(c)
	if !ok {
		return
	}

	var dto ReopenDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	ts, err := ep.svc.Reopen(db, id, reopenerID, dto.Comment)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toTimesheetDTO(*ts)))
}
