package holders

import (
	"net/http"
	"strconv"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type HolderHandler struct {
	repository *HolderRepository
}

func NewHandler(r *HolderRepository) *HolderHandler {
	return &HolderHandler{repository: r}
}

func (h *HolderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/holders", security.Authorize(roles.Staff), h.CreateHolder)
	router.GET("/holders", security.Authorize(roles.Staff), h.GetHolders)
	router.GET("/holders/:id", security.Authorize(roles.Staff), h.GetHolder)
	router.DELETE("/holders/:id", security.Authorize(roles.Manager), h.RemoveHolder)
}

func (h *HolderHandler) GetHolders(c *gin.Context) {
	holders, err := h.repository.GetHolders()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list holders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, holders)
}

func (h *HolderHandler) GetHolder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid holder ID"})
		return
	}

	holder, err := h.repository.GetHolder(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, holder)
}

func (h *HolderHandler) CreateHolder(c *gin.Context) {
	var holder models.AssetHolder
	if err := c.ShouldBindJSON(&holder); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if holder.Fullname == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Holder fullname is required"})
		return
	}

	if err := h.repository.PersistHolder(&holder); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, holder)
}

func (h *HolderHandler) RemoveHolder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid holder ID"})
		return
	}

	if err := h.repository.RemoveHolder(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holder deleted successfully"})
}
