package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml. Path parameters arrive bound
// and typed; bodies are bound by the implementation.
type ServerInterface interface {
	// Place an order
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Get an order by its business id
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// Move an order to a new status
	// (PUT /orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error
	// List the orders of a vendor, newest first
	// (GET /orders/vendor/{vendorId})
	GetVendorOrders(ctx echo.Context, vendorID int64) error
	// List the orders of a customer, newest first
	// (GET /orders/user/{userId})
	GetUserOrders(ctx echo.Context, userID int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderID)
}

// GetVendorOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetVendorOrders(ctx echo.Context) error {
	var vendorID int64
	if err := bindPath(ctx, "vendorId", &vendorID); err != nil {
		return err
	}
	return w.Handler.GetVendorOrders(ctx, vendorID)
}

// GetUserOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetUserOrders(ctx echo.Context) error {
	var userID int64
	if err := bindPath(ctx, "userId", &userID); err != nil {
		return err
	}
	return w.Handler.GetUserOrders(ctx, userID)
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of the API to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL adds every route of the API under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/vendor/:vendorId", wrapper.GetVendorOrders)
	router.GET(baseURL+"/orders/user/:userId", wrapper.GetUserOrders)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/orders/:orderId/status", wrapper.UpdateOrderStatus)
}
