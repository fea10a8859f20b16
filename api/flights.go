package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.save)
	router.GET("", h.search)
}

func (h *FlightHandler) save(c *gin.Context) {
	var req flights.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body"))
		return
	}
	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (h *FlightHandler) search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(),
		c.Query("departure"), c.Query("arrival"), c.Query("departureDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
