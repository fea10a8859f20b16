package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketbooking/internal/domain"
)

// baseResponse is the envelope every endpoint answers with.
type baseResponse struct {
	Status    int    `json:"status"`
	IsSuccess bool   `json:"isSuccess"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, baseResponse{Status: status, IsSuccess: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, baseResponse{Status: status, IsSuccess: false, Error: err.Error()})
}

// statusFor maps each domain error category onto its own HTTP status;
// anything else is a 500.
func statusFor(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindBusiness:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
