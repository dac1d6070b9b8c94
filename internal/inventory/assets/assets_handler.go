package assets

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

type AssetHandler struct {
	Repository       *repository.Repository
	AssetsRepository *AssetsRepository
	AuditLog         *auditlog.Auditlog
}

func NewAssetHandler(r *repository.Repository, ar *AssetsRepository, a *auditlog.Auditlog) *AssetHandler {
	return &AssetHandler{
		Repository:       r,
		AssetsRepository: ar,
		AuditLog:         a,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets", security.Authorize(roles.Staff), h.CreateAsset)
	router.GET("/assets", security.Authorize(roles.Staff), h.GetAssets)
	router.GET("/assets/:id", security.Authorize(roles.Staff), h.GetAsset)
	router.DELETE("/assets/:id", security.Authorize(roles.Manager), h.DeleteAsset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	asset, err := h.AssetsRepository.PersistAsset(req)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Asset with the same tag or serial already registered"})
			return
		case *custom_error.ValidationError:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
			return
		}
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"tag":         asset.Tag,
			"location_id": asset.Location.ID,
			"msg":         "Register asset manually",
		},
		asset,
	)

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	var query struct {
		LocationID *int   `form:"location_id"`
		ModelID    *int   `form:"model_id"`
		Status     string `form:"status"`
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
	if query.Status != "" {
		conditions.AddCondition("status", query.Status)
	}

	assets, err := h.AssetsRepository.GetAssetsBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assets"})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.AssetsRepository.GetAsset(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	canRemove, err := h.AssetsRepository.CanRemoveAsset(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify asset"})
		return
	}
	if !canRemove {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Asset is deployed or has assignment history and cannot be removed"})
		return
	}

	if _, err := h.AssetsRepository.RemoveAsset(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
