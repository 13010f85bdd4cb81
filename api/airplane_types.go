package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/service/catalog"
)

type AirplaneTypeHandler struct {
	service catalog.CatalogUseCase
}

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewAirplaneTypeHandler(service catalog.CatalogUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
	router.PUT("/:id", guard.Write, h.update)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	airplaneType, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneType)
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airplaneType := domain.AirplaneType{Name: req.Name}
	if err := h.service.CreateAirplaneType(c.Request.Context(), &airplaneType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneType)
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}

	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airplaneType := domain.AirplaneType{ID: id, Name: req.Name}
	if err := h.service.UpdateAirplaneType(c.Request.Context(), &airplaneType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneType)
}
