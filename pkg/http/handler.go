package http

import "github.com/labstack/echo/v4"

// Handler defines HTTP route registration interface.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// Handlers bundles several Handler values into one.
type Handlers []Handler

func (hs Handlers) RegisterRoutes(e *echo.Echo) {
	for _, h := range hs {
		h.RegisterRoutes(e)
	}
}
