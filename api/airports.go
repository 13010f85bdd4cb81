package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/service/catalog"
)

type AirportHandler struct {
	service catalog.CatalogUseCase
}

type airportRequest struct {
	Name           string `json:"name" binding:"required"`
	ClosestBigCity string `json:"closest_big_city" binding:"required"`
}

func NewAirportHandler(service catalog.CatalogUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
	router.PUT("/:id", guard.Write, h.update)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airport := domain.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.CreateAirport(c.Request.Context(), &airport); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *AirportHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}

	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airport := domain.Airport{ID: id, Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.UpdateAirport(c.Request.Context(), &airport); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
