package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/service/routes"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.save)
	router.GET("", h.search)
}

func (h *RouteHandler) save(c *gin.Context) {
	var req routes.SaveRequest
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

func (h *RouteHandler) search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("departure"), c.Query("arrival"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
