package assignments

import (
	"net/http"
	"strconv"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/auditlog"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

// Service covers what the handler needs; the concrete AssignmentService
// satisfies it and tests substitute a mock.
type Service interface {
	CheckOut(req CheckOutRequest) (*models.Assignment, error)
	CheckIn(assignmentID int, returnDate models.Date) (*models.Assignment, error)
	GetAssetHistory(assetID int) ([]models.Assignment, error)
}

type AssignmentHandler struct {
	service  Service
	auditLog *auditlog.Auditlog
}

func NewHandler(service Service, a *auditlog.Auditlog) *AssignmentHandler {
	return &AssignmentHandler{
		service:  service,
		auditLog: a,
	}
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assignments", security.Authorize(roles.Staff), h.CheckOut)
	router.PUT("/assignments/:id/return", security.Authorize(roles.Staff), h.CheckIn)
	router.GET("/assets/:id/assignments", security.Authorize(roles.Staff), h.GetAssetHistory)
}

func (h *AssignmentHandler) CheckOut(c *gin.Context) {
	var req CheckOutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	assignment, err := h.service.CheckOut(req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"check_out",
		map[string]interface{}{
			"asset_id":        assignment.AssetID,
			"assignment_date": assignment.AssignmentDate.String(),
		},
		assignment,
	)

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) CheckIn(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	assignment, err := h.service.CheckIn(id, req.ReturnDate)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"check_in",
		map[string]interface{}{
			"asset_id":    assignment.AssetID,
			"return_date": req.ReturnDate.String(),
		},
		assignment,
	)

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) GetAssetHistory(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	assignments, err := h.service.GetAssetHistory(assetID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}
