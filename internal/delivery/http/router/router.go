// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"dispatch/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	DispatchHandler *handler.DispatchHandler
	RouteHandler    *handler.RouteHandler
	BatchHandler    *handler.BatchHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	dispatchHandler *handler.DispatchHandler
	routeHandler    *handler.RouteHandler
	batchHandler    *handler.BatchHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		dispatchHandler: params.DispatchHandler,
		routeHandler:    params.RouteHandler,
		batchHandler:    params.BatchHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")
	{
		api.POST("/dispatch", r.dispatchHandler.Dispatch)
		api.POST("/dispatch/batch", r.batchHandler.AssignBatch)
		api.POST("/routes/optimize", r.routeHandler.OptimizeRoute)
	}
}
