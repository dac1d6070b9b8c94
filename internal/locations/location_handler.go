package locations

import (
	"net/http"
	"strconv"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	repository *LocationRepository
}

type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Details *string `json:"details"`
}

func NewHandler(r *LocationRepository) *LocationHandler {
	return &LocationHandler{repository: r}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/locations", security.Authorize(roles.Manager), h.CreateLocation)
	router.GET("/locations", security.Authorize(roles.Staff), h.GetLocations)
	router.GET("/locations/:id", security.Authorize(roles.Staff), h.GetLocation)
	router.PATCH("/locations/:id", security.Authorize(roles.Manager), h.UpdateLocation)
	router.DELETE("/locations/:id", security.Authorize(roles.Manager), h.RemoveLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.repository.GetLocations()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	location, err := h.repository.GetLocation(id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if location.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Location name is required"})
		return
	}

	if err := h.repository.PersistLocation(&location); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	location, err := h.repository.UpdateLocation(id, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) RemoveLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.repository.RemoveLocation(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
