package handler

import (
	"context"
	"net/http"

	"github.com/hoteldesk/frontdesk/internal/dto"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/bookings")
	g.POST("", h.CreateBooking)
	g.GET("/:id", h.GetBooking)
	g.PUT("/:id/dates", h.Reschedule)
	g.POST("/:id/checkin", h.CheckIn)
	g.POST("/:id/checkout", h.CheckOut)
	g.POST("/:id/cancel", h.Cancel)

	e.GET("/api/v1/customers/:id/bookings", h.ListByCustomer)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == 0 || req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id and customer_id are required")
	}
	checkin, err := dto.ParseDate(req.Checkin)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkin must be a YYYY-MM-DD date")
	}
	checkout, err := dto.ParseDate(req.Checkout)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkout must be a YYYY-MM-DD date")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), req.RoomID, req.CustomerID, checkin, checkout)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Reschedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RescheduleBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	checkin, err := dto.ParseDate(req.Checkin)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkin must be a YYYY-MM-DD date")
	}
	checkout, err := dto.ParseDate(req.Checkout)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkout must be a YYYY-MM-DD date")
	}

	booking, err := h.svc.Reschedule(c.Request().Context(), id, checkin, checkout)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.transition(c, h.svc.CheckIn)
}

func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.transition(c, h.svc.CheckOut)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.svc.Cancel)
}

func (h *BookingHandler) transition(c echo.Context, fn func(ctx context.Context, id uint) (*models.Booking, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	booking, err := fn(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListByCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bookings, err := h.svc.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}
