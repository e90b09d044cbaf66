package timesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tempora.com/tempora/web/common"
)

func (ep *Endpoint) PostMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	senderID, ok := actorID(c)
	if !ok {
		return
	}

	var dto MessageDTO
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

	msg, err := ep.svc.PostMessage(db, id, senderID, dto.Body, dto.ParentID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(ChatMessageDTO{
		ID:         msg.ID,
		ParentID:   msg.ParentID,
		SenderID:   msg.SenderID,
		SenderRole: string(msg.SenderRole),
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
		Replies:    []ChatMessageDTO{},
	}))
}

func (ep *Endpoint) Messages(c *gin.Context) {
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

	msgs, err := ep.svc.Messages(db, id, viewerID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toChatDTOs(msgs)))
}
