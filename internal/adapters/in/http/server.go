// Package http exposes the order and shipment use cases over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server translates HTTP requests into commands and queries.
// It owns no business behavior: binding, identifier parsing and status-code
// mapping happen here, everything else in the application layer.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	assignCarrierHandler     commands.AssignCarrierCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	createShipmentHandler    commands.CreateShipmentCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	reportAnomalyHandler     commands.ReportAnomalyCommandHandler
	reconcileShipmentHandler commands.ReconcileShipmentCommandHandler

	// Query handlers
	getOrderByTrackingIDHandler queries.GetOrderByTrackingIDQueryHandler
	getCustomerOrdersHandler    queries.GetCustomerOrdersQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignCarrierHandler commands.AssignCarrierCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	reportAnomalyHandler commands.ReportAnomalyCommandHandler,
	reconcileShipmentHandler commands.ReconcileShipmentCommandHandler,
	getOrderByTrackingIDHandler queries.GetOrderByTrackingIDQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		assignCarrierHandler:        assignCarrierHandler,
		updateOrderHandler:          updateOrderHandler,
		createShipmentHandler:       createShipmentHandler,
		confirmDeliveryHandler:      confirmDeliveryHandler,
		reportAnomalyHandler:        reportAnomalyHandler,
		reconcileShipmentHandler:    reconcileShipmentHandler,
		getOrderByTrackingIDHandler: getOrderByTrackingIDHandler,
		getCustomerOrdersHandler:    getCustomerOrdersHandler,
	}
}

// RegisterRoutes attaches every route to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api")
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.PUT("/orders/:id/assign-carrier", s.AssignCarrier)
	api.POST("/orders/:id/confirm-delivery", s.ConfirmDelivery)
	api.POST("/orders/:id/report-anomaly", s.ReportAnomaly)
	api.GET("/orders/tracking/:trackingId", s.GetOrderByTrackingID)
	api.GET("/orders/my-orders/:customerId", s.GetCustomerOrders)
	api.POST("/shipments", s.CreateShipment)
	api.POST("/shipments/:id/reconcile", s.ReconcileShipment)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderRequest struct {
	CustomerID         string  `json:"customerId"`
	OriginAddress      string  `json:"originAddress"`
	DestinationAddress string  `json:"destinationAddress"`
	Weight             float64 `json:"weight"`
}

type updateOrderRequest struct {
	OriginAddress      string  `json:"originAddress"`
	DestinationAddress string  `json:"destinationAddress"`
	Weight             float64 `json:"weight"`
	CarrierID          *string `json:"carrierId"`
	Status             *string `json:"status"`
	FailureReason      string  `json:"failureReason"`
}

type assignCarrierRequest struct {
	CarrierID string `json:"carrierId"`
}

type createShipmentRequest struct {
	CarrierID string   `json:"carrierId"`
	OrderIDs  []string `json:"orderIds"`
}

type createShipmentResponse struct {
	ShipmentID    string `json:"shipmentId"`
	CarrierID     string `json:"carrierId"`
	DriverID      string `json:"driverId"`
	OrdersUpdated int64  `json:"ordersUpdated"`
}

type confirmDeliveryRequest struct {
	ProofPayload string     `json:"proofPayload"`
	ProofType    string     `json:"proofType"`
	Location     string     `json:"location"`
	DeliveredAt  *time.Time `json:"deliveredAt"`
}

type reportAnomalyRequest struct {
	ErrorMessage string `json:"errorMessage"`
}

type reconcileShipmentResponse struct {
	ShipmentID   string `json:"shipmentId"`
	Transitioned bool   `json:"transitioned"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer identifier")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID,
		req.OriginAddress, req.DestinationAddress,
		req.Weight,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderJSON(created))
}

// UpdateOrder handles PUT /api/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req updateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var carrierID *kernel.UUID
	if req.CarrierID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.CarrierID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid carrier identifier")
		}
		carrierID = &parsed
	}

	var status *order.Status
	if req.Status != nil {
		parsed, parseErr := order.StatusFromString(*req.Status)
		if parseErr != nil {
			return badRequest(ctx, "Invalid order status")
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdateOrderCommand(
		orderID,
		req.OriginAddress, req.DestinationAddress,
		req.Weight,
		carrierID, status,
		req.FailureReason,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderJSON(updated))
}

// AssignCarrier handles PUT /api/orders/:id/assign-carrier.
func (s *Server) AssignCarrier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req assignCarrierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier identifier")
	}

	cmd, err := commands.NewAssignCarrierCommand(orderID, carrierID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.assignCarrierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderJSON(updated))
}

// CreateShipment handles POST /api/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier identifier")
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid order identifier: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewCreateShipmentCommand(orderIDs, carrierID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createShipmentResponse{
		ShipmentID:    result.ShipmentID.String(),
		CarrierID:     result.CarrierID.String(),
		DriverID:      result.DriverID.String(),
		OrdersUpdated: result.OrdersUpdated,
	})
}

// ConfirmDelivery handles POST /api/orders/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req confirmDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var deliveredAt time.Time
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, req.ProofPayload, req.ProofType, req.Location, deliveredAt)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderJSON(updated))
}

// ReportAnomaly handles POST /api/orders/:id/report-anomaly.
func (s *Server) ReportAnomaly(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req reportAnomalyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportAnomalyCommand(orderID, req.ErrorMessage)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.reportAnomalyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderJSON(updated))
}

// ReconcileShipment handles POST /api/shipments/:id/reconcile, a manual
// repair path for shipments whose sweep is lagging.
func (s *Server) ReconcileShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment identifier")
	}

	cmd, err := commands.NewReconcileShipmentCommand(shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	transitioned, err := s.reconcileShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, reconcileShipmentResponse{
		ShipmentID:   shipmentID.String(),
		Transitioned: transitioned,
	})
}

// GetOrderByTrackingID handles GET /api/orders/tracking/:trackingId.
func (s *Server) GetOrderByTrackingID(ctx echo.Context) error {
	query, err := queries.NewGetOrderByTrackingIDQuery(ctx.Param("trackingId"))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getOrderByTrackingIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetCustomerOrders handles GET /api/orders/my-orders/:customerId.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer identifier")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// orderJSON is the HTTP projection of an order aggregate.
type orderJSON struct {
	ID                 string     `json:"orderId"`
	CustomerID         string     `json:"customerId"`
	TrackingID         string     `json:"trackingId"`
	OriginAddress      string     `json:"originAddress"`
	DestinationAddress string     `json:"destinationAddress"`
	Weight             float64    `json:"weight"`
	Status             string     `json:"status"`
	OrderDate          time.Time  `json:"orderDate"`
	CarrierID          *string    `json:"carrierId,omitempty"`
	ShipmentID         *string    `json:"shipmentId,omitempty"`
	ActualDeliveryTime *time.Time `json:"actualDeliveryTime,omitempty"`
	ErrorMessage       *string    `json:"errorMessage,omitempty"`
}

func toOrderJSON(o *order.Order) orderJSON {
	resp := orderJSON{
		ID:                 o.ID().String(),
		CustomerID:         o.CustomerID().String(),
		TrackingID:         o.TrackingID(),
		OriginAddress:      o.OriginAddress(),
		DestinationAddress: o.DestinationAddress(),
		Weight:             o.Weight(),
		Status:             o.Status().String(),
		OrderDate:          o.OrderDate(),
		ActualDeliveryTime: o.ActualDeliveryTime(),
		ErrorMessage:       o.ErrorMessage(),
	}

	if carrierID := o.Carrier(); carrierID != nil {
		s := carrierID.String()
		resp.CarrierID = &s
	}
	if shipmentID := o.Shipment(); shipmentID != nil {
		s := shipmentID.String()
		resp.ShipmentID = &s
	}

	return resp
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes. Anything not
// recognized becomes a generic 500 so driver details never cross the boundary.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, commands.ErrNoDriverAvailable):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, commands.ErrCarrierNotFound),
		errors.Is(err, commands.ErrOrderNotValid):
		code = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
