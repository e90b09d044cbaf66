package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/workflow"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

// HTTPStatus maps a workflow error kind to a transport status. Conflicts
// are 409 so callers can tell a lost race apart from bad input and decide
// whether a retry makes sense.
func HTTPStatus(err error) int {
	switch workflow.KindOf(err) {
	case workflow.KindValidation:
		return http.StatusBadRequest
	case workflow.KindConflict:
		return http.StatusConflict
	case workflow.KindForbidden:
		return http.StatusForbidden
	case workflow.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// WriteError renders err with its mapped status. Internal errors are not
// echoed to the client verbatim.
func WriteError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
		_ = c.Error(err)
	}
	c.JSON(status, NewErrorResponse(message))
}
