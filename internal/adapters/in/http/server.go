// Package http exposes the shipment workflow over a REST API.
// It coordinates between HTTP handlers and application use cases: requests
// are authenticated by the bearer-token middleware, decoded into commands or
// queries, and dispatched to the application layer. All authorization beyond
// authentication lives in the use cases themselves.
package http

import (
	"net/http"
	"strings"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/application/usecases/queries"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers of the API.
type Server struct {
	// Command handlers
	createShipmentHandler   commands.CreateShipmentCommandHandler
	assignTravelerHandler   commands.AssignTravelerCommandHandler
	cancelShipmentHandler   commands.CancelShipmentCommandHandler
	checkInHandler          commands.CheckInCommandHandler
	verifyTravelerHandler   commands.VerifyTravelerCommandHandler
	handoffHandler          commands.HandoffCommandHandler
	confirmPickupHandler    commands.ConfirmPickupCommandHandler
	deliverHandler          commands.DeliverCommandHandler
	confirmReceiptHandler   commands.ConfirmReceiptCommandHandler
	registerRelayHandler    commands.RegisterRelayPointCommandHandler
	verifyRelayPointHandler commands.VerifyRelayPointCommandHandler

	// Query handlers
	getShipmentHandler   queries.GetShipmentQueryHandler
	listShipmentsHandler queries.ListShipmentsQueryHandler
	getTimelineHandler   queries.GetTimelineQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	assignTravelerHandler commands.AssignTravelerCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	checkInHandler commands.CheckInCommandHandler,
	verifyTravelerHandler commands.VerifyTravelerCommandHandler,
	handoffHandler commands.HandoffCommandHandler,
	confirmPickupHandler commands.ConfirmPickupCommandHandler,
	deliverHandler commands.DeliverCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	registerRelayHandler commands.RegisterRelayPointCommandHandler,
	verifyRelayPointHandler commands.VerifyRelayPointCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	listShipmentsHandler queries.ListShipmentsQueryHandler,
	getTimelineHandler queries.GetTimelineQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:   createShipmentHandler,
		assignTravelerHandler:   assignTravelerHandler,
		cancelShipmentHandler:   cancelShipmentHandler,
		checkInHandler:          checkInHandler,
		verifyTravelerHandler:   verifyTravelerHandler,
		handoffHandler:          handoffHandler,
		confirmPickupHandler:    confirmPickupHandler,
		deliverHandler:          deliverHandler,
		confirmReceiptHandler:   confirmReceiptHandler,
		registerRelayHandler:    registerRelayHandler,
		verifyRelayPointHandler: verifyRelayPointHandler,
		getShipmentHandler:      getShipmentHandler,
		listShipmentsHandler:    listShipmentsHandler,
		getTimelineHandler:      getTimelineHandler,
	}
}

// RegisterRoutes mounts all API routes under /api/v1 behind the given auth
// middleware. The health endpoint stays unauthenticated.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", auth)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.ListShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.GET("/shipments/:id/timeline", s.GetTimeline)
	api.POST("/shipments/:id/assign-traveler", s.AssignTraveler)
	api.POST("/shipments/:id/cancel", s.CancelShipment)
	api.POST("/shipments/:id/confirm-receipt", s.ConfirmReceipt)

	api.POST("/relay-points", s.RegisterRelayPoint)
	api.POST("/relay-points/:id/verify", s.VerifyRelayPoint)
	api.POST("/relay-points/check-in", s.CheckIn)
	api.POST("/relay-points/verify-traveler", s.VerifyTraveler)
	api.POST("/relay-points/handoff", s.Handoff)

	api.POST("/travelers/pickup", s.ConfirmPickup)
	api.POST("/travelers/deliver", s.Deliver)
	api.GET("/travelers/my-shipments", s.ListMyShipments)
}

// CreateShipment handles POST /api/v1/shipments. Returns the created shipment
// including the minted verification codes; this response is the only place
// the sender receives them.
func (s *Server) CreateShipment(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req CreateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	documentType, err := shipment.DocumentTypeFromString(req.DocumentType)
	if err != nil {
		return errorResponse(c, err)
	}

	price, err := kernel.NewPrice(req.OfferedPrice)
	if err != nil {
		return errorResponse(c, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), a, commands.CreateShipmentParams{
		SenderName:         req.SenderName,
		SenderPhone:        req.SenderPhone,
		SourceAddress:      req.SourceAddress,
		RecipientName:      req.RecipientName,
		RecipientPhone:     req.RecipientPhone,
		DestinationAddress: req.DestinationAddress,
		DocumentType:       documentType,
		Description:        req.Description,
		OfferedPrice:       price,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	created, err := s.createShipmentHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, shipmentFromAggregate(created))
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID, a)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := s.getShipmentHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, shipmentFromReadModel(result))
}

// ListShipments handles GET /api/v1/shipments - the requester's shipments,
// newest first. Supports status, page and page_size query parameters.
func (s *Server) ListShipments(c echo.Context) error {
	return s.listShipments(c, false)
}

// ListMyShipments handles GET /api/v1/travelers/my-shipments - shipments
// where the requester is the assigned traveler.
func (s *Server) ListMyShipments(c echo.Context) error {
	return s.listShipments(c, true)
}

func (s *Server) listShipments(c echo.Context, travelerOnly bool) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	params := queries.ListShipmentsParams{TravelerOnly: travelerOnly}

	if raw := c.QueryParam("status"); raw != "" {
		status, err := shipment.StatusFromString(raw)
		if err != nil {
			return errorResponse(c, err)
		}
		params.Status = status
	}
	if err := bindIntParam(c, "page", &params.Page); err != nil {
		return badRequest(c, "Invalid page")
	}
	if err := bindIntParam(c, "page_size", &params.PageSize); err != nil {
		return badRequest(c, "Invalid page size")
	}

	query, err := queries.NewListShipmentsQuery(a, params)
	if err != nil {
		return errorResponse(c, err)
	}

	results, err := s.listShipmentsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	response := make([]Shipment, len(results))
	for i, r := range results {
		response[i] = shipmentFromReadModel(r)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTimeline handles GET /api/v1/shipments/:id/timeline.
func (s *Server) GetTimeline(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	query, err := queries.NewGetTimelineQuery(shipmentID, a)
	if err != nil {
		return errorResponse(c, err)
	}

	steps, err := s.getTimelineHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, timelineFromReadModel(steps))
}

// AssignTraveler handles POST /api/v1/shipments/:id/assign-traveler.
func (s *Server) AssignTraveler(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	var req AssignTravelerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	travelerID, err := kernel.UUIDFromString(req.TravelerID)
	if err != nil {
		return badRequest(c, "Invalid traveler id")
	}
	tripID, err := kernel.UUIDFromString(req.TripID)
	if err != nil {
		return badRequest(c, "Invalid trip id")
	}

	cmd, err := commands.NewAssignTravelerCommand(shipmentID, travelerID, tripID, a)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.assignTravelerHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	var req CancelShipmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, a, req.Reason)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.cancelShipmentHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmReceipt handles POST /api/v1/shipments/:id/confirm-receipt.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	cmd, err := commands.NewConfirmReceiptCommand(shipmentID, a)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.confirmReceiptHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterRelayPoint handles POST /api/v1/relay-points.
func (s *Server) RegisterRelayPoint(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req RegisterRelayPointRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var geo *kernel.GeoPoint
	if req.Latitude != nil && req.Longitude != nil {
		point, err := kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
		if err != nil {
			return errorResponse(c, err)
		}
		geo = &point
	}

	cmd, err := commands.NewRegisterRelayPointCommand(kernel.NewUUID(), a, commands.RegisterRelayPointParams{
		LocationName: req.LocationName,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Geo:          geo,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	created, err := s.registerRelayHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, relayPointFromAggregate(created))
}

// VerifyRelayPoint handles POST /api/v1/relay-points/:id/verify.
func (s *Server) VerifyRelayPoint(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	relayPointID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid relay point id")
	}

	cmd, err := commands.NewVerifyRelayPointCommand(relayPointID, a)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.verifyRelayPointHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CheckIn handles POST /api/v1/relay-points/check-in. The shipment is looked
// up by the presented unique code.
func (s *Server) CheckIn(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCheckInCommand(normalizeCode(req.UniqueCode), a, req.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	checkedIn, err := s.checkInHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	result := shipmentFromAggregate(checkedIn)
	result.Codes = nil
	return c.JSON(http.StatusOK, result)
}

// VerifyTraveler handles POST /api/v1/relay-points/verify-traveler. Read-only
// pre-handoff check; a mismatch yields 400 rather than a transition error.
func (s *Server) VerifyTraveler(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req VerifyTravelerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	cmd, err := commands.NewVerifyTravelerCommand(shipmentID, normalizeCode(req.TravelerCode), a)
	if err != nil {
		return errorResponse(c, err)
	}

	verified, err := s.verifyTravelerHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, VerifyTravelerResponse{
		ShipmentID: verified.ID().String(),
		Verified:   true,
	})
}

// Handoff handles POST /api/v1/relay-points/handoff.
func (s *Server) Handoff(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req HandoffRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	cmd, err := commands.NewHandoffCommand(shipmentID, normalizeCode(req.TravelerCode), a, req.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.handoffHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmPickup handles POST /api/v1/travelers/pickup.
func (s *Server) ConfirmPickup(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req PickupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	cmd, err := commands.NewConfirmPickupCommand(shipmentID, normalizeCode(req.TravelerCode), a, req.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.confirmPickupHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Deliver handles POST /api/v1/travelers/deliver.
func (s *Server) Deliver(c echo.Context) error {
	a, err := actorFromContext(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req DeliverRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return badRequest(c, "Invalid shipment id")
	}

	cmd, err := commands.NewDeliverCommand(shipmentID, normalizeCode(req.DeliveryCode), a, req.Notes)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.deliverHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// normalizeCode uppercases and trims a presented verification code so codes
// read aloud over the phone still match.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func bindIntParam(c echo.Context, name string, target *int) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	return echo.QueryParamsBinder(c).Int(name, target).BindError()
}
