package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/service/tickets"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/purchase", h.purchase)
	router.GET("/:ticketNumber", h.get)
	router.POST("/check-in/:ticketNumber", h.checkIn)
	router.POST("/cancel/:ticketNumber", h.cancel)
}

func (h *TicketHandler) purchase(c *gin.Context) {
	var req tickets.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body"))
		return
	}
	resp, err := h.service.Purchase(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (h *TicketHandler) get(c *gin.Context) {
	resp, err := h.service.GetByNumber(c.Request.Context(), c.Param("ticketNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (h *TicketHandler) checkIn(c *gin.Context) {
	if err := h.service.CheckIn(c.Request.Context(), c.Param("ticketNumber")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "checked in")
}

func (h *TicketHandler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("ticketNumber")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "ticket cancelled")
}
