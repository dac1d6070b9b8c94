package checkouts

import (
	"net/http"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/auditlog"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Checkout(req CheckoutRequest) (*models.ConsumableCheckout, error)
	ListReceipts() (*[]models.ConsumableCheckout, error)
}

type CheckoutHandler struct {
	service  Service
	auditLog *auditlog.Auditlog
}

func NewHandler(service Service, a *auditlog.Auditlog) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		auditLog: a,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkouts", security.Authorize(roles.Staff), h.Checkout)
	router.GET("/checkouts", security.Authorize(roles.Staff), h.GetCheckouts)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	receipt, err := h.service.Checkout(req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"checkout",
		map[string]interface{}{
			"model_id":    receipt.Model.ID,
			"location_id": receipt.Location.ID,
			"holder_id":   receipt.Holder.ID,
			"quantity":    receipt.Quantity,
		},
		receipt,
	)

	c.JSON(http.StatusCreated, receipt)
}

func (h *CheckoutHandler) GetCheckouts(c *gin.Context) {
	receipts, err := h.service.ListReceipts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checkouts"})
		return
	}

	c.JSON(http.StatusOK, receipts)
}
