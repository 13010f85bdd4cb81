package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/repository"
	"github.com/katryana/airport-api/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Route         int64     `json:"route" binding:"required"`
	Airplane      int64     `json:"airplane" binding:"required"`
	Crews         []int64   `json:"crews"`
}

// flightListView is the compact list row: string-rendered relations plus the
// derived capacity and availability.
type flightListView struct {
	ID               int64  `json:"id"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	Duration         string `json:"duration"`
	Route            string `json:"route"`
	Airplane         string `json:"airplane"`
	AirplaneCapacity int    `json:"airplane_capacity"`
	SeatsAvailable   int    `json:"seats_available"`
}

type flightDetailView struct {
	ID            int64            `json:"id"`
	DepartureTime string           `json:"departure_time"`
	ArrivalTime   string           `json:"arrival_time"`
	Duration      string           `json:"duration"`
	Route         routeListView    `json:"route"`
	Airplane      airplaneListView `json:"airplane"`
	TakenSeats    []domain.SeatRef `json:"taken_seats"`
	Crews         []string         `json:"crews"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
	router.PUT("/:id", guard.Write, h.update)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, err := flightFilterFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{domain.NonFieldErrors: []string{err.Error()}})
		return
	}

	flightList, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]flightListView, 0, len(flightList))
	for _, f := range flightList {
		views = append(views, flightListView{
			ID:               f.ID,
			DepartureTime:    f.DepartureTime.Format(time.RFC3339),
			ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
			Duration:         f.Duration(),
			Route:            f.Route.String(),
			Airplane:         f.Airplane.Name,
			AirplaneCapacity: f.Airplane.Capacity(),
			SeatsAvailable:   f.SeatsAvailable,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	crewNames := make([]string, 0, len(flight.Crews))
	for _, crew := range flight.Crews {
		crewNames = append(crewNames, crew.String())
	}

	c.JSON(http.StatusOK, flightDetailView{
		ID:            flight.ID,
		DepartureTime: flight.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   flight.ArrivalTime.Format(time.RFC3339),
		Duration:      flight.Duration(),
		Route: routeListView{
			ID:          flight.Route.ID,
			Distance:    flight.Route.Distance,
			Source:      flight.Route.Source.Name,
			Destination: flight.Route.Destination.Name,
		},
		Airplane: airplaneListView{
			ID:           flight.Airplane.ID,
			Name:         flight.Airplane.Name,
			AirplaneType: flight.Airplane.AirplaneType.Name,
			Capacity:     flight.Airplane.Capacity(),
		},
		TakenSeats: flight.TakenSeats,
		Crews:      crewNames,
	})
}

func (h *FlightHandler) create(c *gin.Context) {
	flight, ok := h.bindFlight(c)
	if !ok {
		return
	}
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	flight, ok := h.bindFlight(c)
	if !ok {
		return
	}
	flight.ID = id
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) bindFlight(c *gin.Context) (*domain.Flight, bool) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}

	flight := &domain.Flight{
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
	}
	for _, crewID := range req.Crews {
		flight.Crews = append(flight.Crews, domain.Crew{ID: crewID})
	}
	return flight, true
}

// flightFilterFrom parses the list query. Dates must be YYYY-MM-DD; all
// present filters compose with AND.
func flightFilterFrom(c *gin.Context) (repository.FlightFilter, error) {
	filter := repository.FlightFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	if raw := c.Query("departure_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.DepartureDate = &date
	}
	if raw := c.Query("arrival_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.ArrivalDate = &date
	}
	return filter, nil
}
