package auditlog

import (
	"net/http"
	"strconv"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuditLogHandler struct {
	repository *AuditLogRepository
}

func NewHandler(r *AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{repository: r}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs/:resource/:id", security.Authorize(roles.Manager), h.GetResourceLog)
}

func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	logs, err := h.repository.GetResourceLog(id, c.Param("resource"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not read audit log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
