package catalog

import (
	"net/http"
	"strconv"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	repository *CatalogRepository
}

func NewHandler(r *CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repository: r}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/asset-models", security.Authorize(roles.Manager), h.CreateAssetModel)
	router.GET("/asset-models", security.Authorize(roles.Staff), h.GetAssetModels)
	router.GET("/asset-models/:id", security.Authorize(roles.Staff), h.GetAssetModel)
	router.DELETE("/asset-models/:id", security.Authorize(roles.Manager), h.RemoveAssetModel)

	router.POST("/consumable-models", security.Authorize(roles.Manager), h.CreateConsumableModel)
	router.GET("/consumable-models", security.Authorize(roles.Staff), h.GetConsumableModels)
	router.GET("/consumable-models/:id", security.Authorize(roles.Staff), h.GetConsumableModel)
	router.DELETE("/consumable-models/:id", security.Authorize(roles.Manager), h.RemoveConsumableModel)
}

func (h *CatalogHandler) GetAssetModels(c *gin.Context) {
	assetModels, err := h.repository.GetAssetModels()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list asset models", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assetModels)
}

func (h *CatalogHandler) GetAssetModel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset model ID"})
		return
	}

	assetModel, err := h.repository.GetAssetModel(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assetModel)
}

func (h *CatalogHandler) CreateAssetModel(c *gin.Context) {
	var assetModel models.AssetModel
	if err := c.ShouldBindJSON(&assetModel); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if assetModel.Code == "" || assetModel.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Asset model code and name are required"})
		return
	}

	if err := h.repository.PersistAssetModel(&assetModel); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, assetModel)
}

func (h *CatalogHandler) RemoveAssetModel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset model ID"})
		return
	}

	if err := h.repository.RemoveAssetModel(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset model deleted successfully"})
}

func (h *CatalogHandler) GetConsumableModels(c *gin.Context) {
	consumableModels, err := h.repository.GetConsumableModels()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list consumable models", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, consumableModels)
}

func (h *CatalogHandler) GetConsumableModel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid consumable model ID"})
		return
	}

	consumableModel, err := h.repository.GetConsumableModel(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, consumableModel)
}

func (h *CatalogHandler) CreateConsumableModel(c *gin.Context) {
	var consumableModel models.ConsumableModel
	if err := c.ShouldBindJSON(&consumableModel); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if consumableModel.Code == "" || consumableModel.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Consumable model code and name are required"})
		return
	}

	if err := h.repository.PersistConsumableModel(&consumableModel); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, consumableModel)
}

func (h *CatalogHandler) RemoveConsumableModel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid consumable model ID"})
		return
	}

	if err := h.repository.RemoveConsumableModel(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consumable model deleted successfully"})
}
