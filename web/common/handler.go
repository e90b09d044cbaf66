package common

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tempora.com/tempora/core"
)

// Handler is the shared base for endpoint groups: it hands out a
// request-scoped, connection-bound *gorm.DB.
type Handler struct {
	Dm *core.DatabaseManager
}

func (h *Handler) GetDB(c *gin.Context) (*gorm.DB, *sql.Conn, error) {
	return h.Dm.GetDB(c.Request.Context())
}
