package timesheet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/core"
	"tempora.com/tempora/web/common"
	"tempora.com/tempora/web/middlewares"
	"tempora.com/tempora/workflow"
)

type Endpoint struct {
	base common.Handler
	svc  *workflow.Service
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, svc *workflow.Service) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, svc: svc}

	r.POST("/timesheets", endpoint.SaveDraft)
	r.GET("/timesheets/pending", endpoint.Pending)
	r.GET("/timesheets/:id", endpoint.Get)
	r.POST("/timesheets/:id/submit", endpoint.Submit)
	r.POST("/timesheets/:id/approve", endpoint.Approve)
	r.POST("/timesheets/:id/reject", endpoint.Reject)
	r.POST("/timesheets/:id/reopen", endpoint.Reopen)
	r.GET("/timesheets/:id/history", endpoint.History)
	r.GET("/timesheets/:id/history/export", endpoint.ExportHistory)
	r.GET("/timesheets/:id/messages", endpoint.Messages)
	r.POST("/timesheets/:id/messages", endpoint.PostMessage)
}

func pathID(c *gin.Context) (int32, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return int32(id), true
}

func actorID(c *gin.Context) (int32, bool) {
	id, ok := middlewares.CurrentEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no authenticated employee"))
		return 0, false
	}
	return id, true
}
