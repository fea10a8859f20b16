package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/service/airlines"
)

type AirlineHandler struct {
	service airlines.AirlineUseCase
}

func NewAirlineHandler(service airlines.AirlineUseCase) *AirlineHandler {
	return &AirlineHandler{service: service}
}

func (h *AirlineHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.save)
	router.GET("", h.search)
}

func (h *AirlineHandler) save(c *gin.Context) {
	var req airlines.SaveRequest
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

func (h *AirlineHandler) search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
