package handler

import (
	"net/http"
	"strconv"

	"github.com/hoteldesk/frontdesk/internal/dto"
	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/labstack/echo/v4"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/rooms/available", h.FindAvailable)
}

func (h *AvailabilityHandler) FindAvailable(c echo.Context) error {
	checkin, err := dto.ParseDate(c.QueryParam("checkin"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkin must be a YYYY-MM-DD date")
	}
	checkout, err := dto.ParseDate(c.QueryParam("checkout"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkout must be a YYYY-MM-DD date")
	}

	var roomTypeID *uint
	if raw := c.QueryParam("room_type_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_type_id")
		}
		u := uint(id)
		roomTypeID = &u
	}

	rooms, err := h.svc.FindAvailableRooms(c.Request().Context(), checkin, checkout, roomTypeID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}
