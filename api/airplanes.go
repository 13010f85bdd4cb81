package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katryana/airport-api/internal/domain"
	"github.com/katryana/airport-api/internal/service/catalog"
)

type AirplaneHandler struct {
	service catalog.CatalogUseCase
}

type airplaneRequest struct {
	Name           string `json:"name" binding:"required"`
	Rows           int    `json:"rows" binding:"required,min=1"`
	SeatsInRow     int    `json:"seats_in_row" binding:"required,min=1"`
	AirplaneTypeID int64  `json:"airplane_type" binding:"required"`
}

// airplaneListView renders the compact list row: the type as its name and the
// derived capacity.
type airplaneListView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AirplaneType string `json:"airplane_type"`
	Capacity     int    `json:"capacity"`
	Image        string `json:"image,omitempty"`
}

type airplaneDetailView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AirplaneType int64  `json:"airplane_type"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	Image        string `json:"image,omitempty"`
}

func NewAirplaneHandler(service catalog.CatalogUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup, guard Guard) {
	router.GET("", guard.Read, h.list)
	router.GET("/:id", guard.Read, h.get)
	router.POST("", guard.Write, h.create)
	router.PUT("/:id", guard.Write, h.update)
	router.POST("/:id/upload-image", guard.Write, h.uploadImage)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]airplaneListView, 0, len(airplanes))
	for _, a := range airplanes {
		views = append(views, airplaneListView{
			ID:           a.ID,
			Name:         a.Name,
			AirplaneType: a.AirplaneType.Name,
			Capacity:     a.Capacity(),
			Image:        a.ImageURL,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneDetail(*airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airplane := domain.Airplane{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := h.service.CreateAirplane(c.Request.Context(), &airplane); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneDetail(airplane))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}

	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	airplane := domain.Airplane{
		ID:             id,
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := h.service.UpdateAirplane(c.Request.Context(), &airplane); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneDetail(airplane))
}

func (h *AirplaneHandler) uploadImage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"image": []string{"No file was submitted."}})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	imageURL, err := h.service.UploadAirplaneImage(c.Request.Context(), id, file.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image": imageURL})
}

func airplaneDetail(a domain.Airplane) airplaneDetailView {
	return airplaneDetailView{
		ID:           a.ID,
		Name:         a.Name,
		AirplaneType: a.AirplaneTypeID,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		Image:        a.ImageURL,
	}
}
