package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shoporders/internal/adapters/in/http/api"
	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/application/usecases/queries"
	"shoporders/internal/core/application/views"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderStatusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	VendorOrdersGetter interface {
		Handle(ctx context.Context, query queries.GetVendorOrdersQuery) ([]*order.Order, error)
	}
	UserOrdersGetter interface {
		Handle(ctx context.Context, query queries.GetUserOrdersQuery) ([]*order.Order, error)
	}
)

var _ api.ServerInterface = (*Server)(nil)

// Server implements api.ServerInterface on top of the order use cases.
type Server struct {
	// Command handlers
	createOrderHandler       OrderCreator
	updateOrderStatusHandler OrderStatusUpdater

	// Query handlers
	getOrderHandler        OrderGetter
	getVendorOrdersHandler VendorOrdersGetter
	getUserOrdersHandler   UserOrdersGetter

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler OrderCreator,
	updateOrderStatusHandler OrderStatusUpdater,
	getOrderHandler OrderGetter,
	getVendorOrdersHandler VendorOrdersGetter,
	getUserOrdersHandler UserOrdersGetter,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getVendorOrdersHandler:   getVendorOrdersHandler,
		getUserOrdersHandler:     getUserOrdersHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body api.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.OrderItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.OrderItemInput{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			PriceAtOrder: item.PriceAtOrder,
			Quantity:     item.Quantity,
			ImageURL:     item.ImageURL,
			Veg:          item.Veg,
		})
	}

	var pickup time.Time
	if body.EstimatedPickupTime != nil {
		pickup = *body.EstimatedPickupTime
	}

	customer := order.Customer{
		UserID: body.UserID,
		Name:   body.CustomerName,
		Email:  body.CustomerEmail,
		Phone:  body.CustomerPhone,
	}

	cmd, err := commands.NewCreateOrderCommand(body.OrderID, body.ShopID, customer, items, body.TotalAmount, pickup)
	if err != nil {
		return s.fail(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, views.FromDomain(placed))
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views.FromDomain(found))
}

// UpdateOrderStatus handles PUT /orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	var body api.StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var vendorID int64
	if body.VendorID != nil {
		vendorID = *body.VendorID
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID.String(), body.NewStatus, vendorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views.FromDomain(updated))
}

// GetVendorOrders handles GET /orders/vendor/{vendorId}.
func (s *Server) GetVendorOrders(ctx echo.Context, vendorID int64) error {
	query, err := queries.NewGetVendorOrdersQuery(vendorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getVendorOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views.FromDomainList(orders))
}

// GetUserOrders handles GET /orders/user/{userId}.
func (s *Server) GetUserOrders(ctx echo.Context, userID int64) error {
	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views.FromDomainList(orders))
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(status, api.Error{Code: status, Message: message})
}

// mapError translates use case errors to a status code and a client-safe message.
// Anything that is not a known business error is reported as a bare 500.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrStatusTransitionIsInvalid),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
