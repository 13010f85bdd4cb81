package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/service/catalog"
)

type CrewHandler struct {
	service catalog.CatalogUseCase
}

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type crewListView struct {
	ID        int64    `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Flights   []string `json:"flights"`
}

// crewDetailView nests the assigned flights instead of rendering them as
// strings.
type crewDetailView struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Flights   []crewFlightView `json:"flights"`
}

type crewFlightView struct {
	ID            int64  `json:"id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`
	Flight        string `json:"flight"`
}

func NewCrewHandler(service catalog.CatalogUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
	router.PUT("/:id", guard.Write, h.update)
}

func (h *CrewHandler) list(c *gin.Context) {
	crews, err := h.service.ListCrews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]crewListView, 0, len(crews))
	for _, crew := range crews {
		views = append(views, crewList(crew))
	}
	c.JSON(http.StatusOK, views)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	crew, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	flights := make([]crewFlightView, 0, len(crew.Flights))
	for _, f := range crew.Flights {
		flights = append(flights, crewFlightView{
			ID:            f.ID,
			DepartureTime: f.DepartureTime.Format(time.RFC3339),
			ArrivalTime:   f.ArrivalTime.Format(time.RFC3339),
			Duration:      f.Duration(),
			Flight:        f.String(),
		})
	}
	c.JSON(http.StatusOK, crewDetailView{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		Flights:   flights,
	})
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	crew := domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.CreateCrew(c.Request.Context(), &crew); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crew)
}

func (h *CrewHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}

	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	crew := domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.UpdateCrew(c.Request.Context(), &crew); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

func crewList(crew domain.Crew) crewListView {
	flights := make([]string, 0, len(crew.Flights))
	for _, f := range crew.Flights {
		flights = append(flights, f.String())
	}
	return crewListView{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		Flights:   flights,
	}
}
