package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/service/orders"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

// ticketListView renders the parent flight as its display string.
type ticketListView struct {
	ID     int64  `json:"id"`
	Row    int    `json:"row"`
	Seat   int    `json:"seat"`
	Flight string `json:"flight"`
}

type ticketDetailView struct {
	ID     int64          `json:"id"`
	Row    int            `json:"row"`
	Seat   int            `json:"seat"`
	Flight flightListView `json:"flight"`
}

type orderListView struct {
	ID        int64            `json:"id"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketListView `json:"tickets"`
}

type orderDetailView struct {
	ID        int64              `json:"id"`
	CreatedAt string             `json:"created_at"`
	Tickets   []ticketDetailView `json:"tickets"`
}

type pageView struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
}

func (h *OrderHandler) list(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	limit, offset := pageParams(c)
	orderList, total, err := h.service.List(c.Request.Context(), ident.UserID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]orderListView, 0, len(orderList))
	for _, order := range orderList {
		views = append(views, orderListViewOf(order))
	}
	c.JSON(http.StatusOK, pageView{Count: total, Results: views})
}

func (h *OrderHandler) get(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	order, err := h.service.Get(c.Request.Context(), ident.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderDetailViewOf(*order))
}

func (h *OrderHandler) create(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var input orders.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), ident.UserID, ident.Email, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderListViewOf(*order))
}

func orderListViewOf(order domain.Order) orderListView {
	tickets := make([]ticketListView, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		flight := ""
		if t.Flight != nil {
			flight = t.Flight.String()
		}
		tickets = append(tickets, ticketListView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: flight})
	}
	return orderListView{
		ID:        order.ID,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Tickets:   tickets,
	}
}

func orderDetailViewOf(order domain.Order) orderDetailView {
	tickets := make([]ticketDetailView, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		view := ticketDetailView{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if f := t.Flight; f != nil {
			view.Flight = flightListView{
				ID:               f.ID,
				DepartureTime:    f.DepartureTime.Format(time.RFC3339),
				ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
				Duration:         f.Duration(),
				Route:            f.Route.String(),
				Airplane:         f.Airplane.Name,
				AirplaneCapacity: f.Airplane.Capacity(),
				SeatsAvailable:   f.SeatsAvailable,
			}
		}
		tickets = append(tickets, view)
	}
	return orderDetailView{
		ID:        order.ID,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Tickets:   tickets,
	}
}
