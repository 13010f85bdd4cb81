package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
	"github.com/katryana/airport-api/internal/service/catalog"
)

// RouteHandler exposes list, retrieve and create. Update and delete are not
// part of the resource; the router answers 405 for them.
type RouteHandler struct {
	service catalog.CatalogUseCase
}

type routeRequest struct {
	Source      int64 `json:"source" binding:"required"`
	Destination int64 `json:"destination" binding:"required"`
	Distance    int   `json:"distance" binding:"required"`
}

type routeListView struct {
	ID          int64  `json:"id"`
	Distance    int    `json:"distance"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type routeDetailView struct {
	ID          int64          `json:"id"`
	Distance    int            `json:"distance"`
	Source      domain.Airport `json:"source"`
	Destination domain.Airport `json:"destination"`
}

func NewRouteHandler(service catalog.CatalogUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
}

func (h *RouteHandler) list(c *gin.Context) {
	filter := repository.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}
	routes, err := h.service.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]routeListView, 0, len(routes))
	for _, r := range routes {
		views = append(views, routeListView{
			ID:          r.ID,
			Distance:    r.Distance,
			Source:      r.Source.Name,
			Destination: r.Destination.Name,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routeDetailView{
		ID:          route.ID,
		Distance:    route.Distance,
		Source:      *route.Source,
		Destination: *route.Destination,
	})
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	route := domain.Route{
		SourceID:      req.Source,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	}
	if err := h.service.CreateRoute(c.Request.Context(), &route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}
