package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/service/airports"
)

type AirportHandler struct {
	service airports.AirportUseCase
}

func NewAirportHandler(service airports.AirportUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.save)
	router.GET("", h.search)
	router.GET("/:id", h.details)
	router.POST("/airlines", h.addAirlines)
}

func (h *AirportHandler) save(c *gin.Context) {
	var req airports.SaveRequest
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

func (h *AirportHandler) search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (h *AirportHandler) details(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.NewValidation("invalid airport id"))
		return
	}
	resp, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (h *AirportHandler) addAirlines(c *gin.Context) {
	var req airports.AddAirlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body"))
		return
	}
	resp, err := h.service.AddAirlines(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
