package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every response with a correlation id, keeping an id the
// caller already supplied.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// NewRouter wires all handler groups under /api.
func NewRouter(airports *AirportHandler, airlines *AirlineHandler, routes *RouteHandler, flights *FlightHandler, tickets *TicketHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), RequestID())

	root := engine.Group("/api")
	airports.Register(root.Group("/airports"))
	airlines.Register(root.Group("/airlines"))
	routes.Register(root.Group("/routes"))
	flights.Register(root.Group("/flights"))
	tickets.Register(root.Group("/tickets"))
	return engine
}
