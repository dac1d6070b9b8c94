package orders

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

// Service covers what the handler needs; the concrete OrderService satisfies
// it and tests substitute a mock.
type Service interface {
	CreateOrder(request CreateOrderRequest, actor models.Actor) (*models.PurchaseOrder, error)
	Transition(orderID int, target models.OrderStatus, actor models.Actor, notes *string, destinationID *int) (*models.PurchaseOrder, *models.StockInResult, error)
	GetOrder(id int) (*models.PurchaseOrder, error)
	GetOrders(status *models.OrderStatus) ([]models.PurchaseOrder, error)
	DeleteOrder(id int) error
}

type OrderHandler struct {
	service  Service
	auditLog *auditlog.Auditlog
}

func NewHandler(service Service, a *auditlog.Auditlog) *OrderHandler {
	return &OrderHandler{
		service:  service,
		auditLog: a,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/orders", security.Authorize(roles.Staff), h.CreateOrder)
	router.GET("/orders", security.Authorize(roles.Staff), h.GetOrders)
	router.GET("/orders/:id", security.Authorize(roles.Staff), h.GetOrder)
	router.PUT("/orders/:id/status", security.Authorize(roles.Staff), h.TransitionOrder)
	router.DELETE("/orders/:id", security.Authorize(roles.Manager), h.DeleteOrder)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(req, actor)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"order_created",
		map[string]interface{}{
			"code":         order.Code,
			"supplier_id":  order.Supplier.ID,
			"total_amount": order.TotalAmount.String(),
		},
		order,
	)

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.NewOrderStatus(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = &parsed
	}

	orders, err := h.service.GetOrders(status)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) TransitionOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	target, err := models.NewOrderStatus(req.Status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	order, stockIn, err := h.service.Transition(id, target, actor, req.Notes, req.LocationID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	go h.auditLog.Log(
		"order_status_changed",
		map[string]interface{}{
			"code":   order.Code,
			"status": string(order.Status),
		},
		order,
	)

	response := gin.H{"order": order}
	if stockIn != nil {
		response["stock_in_result"] = stockIn
	}

	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := h.service.DeleteOrder(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order removed successfully"})
}
