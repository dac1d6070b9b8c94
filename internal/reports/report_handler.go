package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *ReportService
}

func NewHandler(service *ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/inventory", security.Authorize(roles.Manager), h.ExportInventory)
}

func (h *ReportHandler) ExportInventory(c *gin.Context) {
	workbook, err := h.service.BuildInventoryWorkbook()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not build inventory report", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := workbook.Write(c.Writer); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not write report"})
		return
	}
}
