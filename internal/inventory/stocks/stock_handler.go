package stocks

import (
	"net/http"
	"strconv"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/auditlog"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	Repository      *repository.Repository
	StockRepository *StockRepository
	AuditLog        *auditlog.Auditlog
}

func NewStockHandler(r *repository.Repository, sr *StockRepository, a *auditlog.Auditlog) *StockHandler {
	return &StockHandler{
		Repository:      r,
		StockRepository: sr,
		AuditLog:        a,
	}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/stocks", security.Authorize(roles.Staff), h.CreateStock)
	router.GET("/stocks", security.Authorize(roles.Staff), h.GetStocks)
	router.GET("/stocks/alerts", security.Authorize(roles.Staff), h.GetLowStock)
	router.GET("/stocks/:id", security.Authorize(roles.Staff), h.GetStock)
}

func (h *StockHandler) CreateStock(c *gin.Context) {
	var stockRequest StockEntryRequest

	if err := c.ShouldBindJSON(&stockRequest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if stockRequest.Quantity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be negative"})
		return
	}
	if stockRequest.MinQuantity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Minimum quantity cannot be negative"})
		return
	}

	stock, err := h.StockRepository.PersistStock(stockRequest)

	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Stock for this model and location already exists"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stock"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"quantity":    stock.Quantity,
			"location_id": stock.Location.ID,
			"msg":         "Register stock row",
		},
		stock,
	)

	c.JSON(http.StatusCreated, stock)
}

func (h *StockHandler) GetStocks(c *gin.Context) {
	var query struct {
		LocationID *int `form:"location_id"`
		ModelID    *int `form:"model_id"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()

	if query.LocationID != nil {
		conditions.AddCondition("location_id", *query.LocationID)
	}
	if query.ModelID != nil {
		conditions.AddCondition("model_id", *query.ModelID)
	}

	stocks, err := h.StockRepository.GetStocksBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock rows"})
		return
	}

	c.JSON(http.StatusOK, stocks)
}

func (h *StockHandler) GetStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}

	stock, err := h.StockRepository.GetStock(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stock)
}

func (h *StockHandler) GetLowStock(c *gin.Context) {
	alerts, err := h.StockRepository.ListLowStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}
