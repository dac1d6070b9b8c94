package suppliers

import (
	"net/http"
	"strconv"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	repository *SupplierRepository
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

func NewHandler(r *SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repository: r}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suppliers", security.Authorize(roles.Manager), h.CreateSupplier)
	router.GET("/suppliers", security.Authorize(roles.Staff), h.GetSuppliers)
	router.GET("/suppliers/:id", security.Authorize(roles.Staff), h.GetSupplier)
	router.PATCH("/suppliers/:id", security.Authorize(roles.Manager), h.UpdateSupplier)
	router.DELETE("/suppliers/:id", security.Authorize(roles.Manager), h.RemoveSupplier)
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.repository.GetSuppliers()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list suppliers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	supplier, err := h.repository.GetSupplier(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if supplier.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Supplier name is required"})
		return
	}

	if err := h.repository.PersistSupplier(&supplier); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	supplier, err := h.repository.UpdateSupplier(id, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) RemoveSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	if err := h.repository.RemoveSupplier(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
