package handler

import (
	"errors"
	"net/http"

	"github.com/hoteldesk/frontdesk/internal/dto"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RoomHandler struct {
	rooms     repository.RoomRepository
	roomTypes repository.RoomTypeRepository
}

func NewRoomHandler(rooms repository.RoomRepository, roomTypes repository.RoomTypeRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms, roomTypes: roomTypes}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/rooms")
	g.POST("", h.CreateRoom)
	g.GET("", h.ListRooms)
	g.GET("/:id", h.GetRoom)
	g.PUT("/:id/status", h.UpdateStatus)

	t := e.Group("/api/v1/room-types")
	t.POST("", h.CreateRoomType)
	t.GET("", h.ListRoomTypes)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomNumber == "" || req.RoomTypeID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "room_number and room_type_id are required")
	}
	if _, err := h.roomTypes.FindByID(c.Request().Context(), req.RoomTypeID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown room_type_id")
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     models.RoomAvailable,
	}
	if err := h.rooms.Create(c.Request().Context(), room); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.rooms.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	room, err := h.rooms.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, room)
}

// UpdateStatus flips the display status, typically into or out of
// maintenance. It never touches existing bookings.
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRoomStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	switch req.Status {
	case models.RoomAvailable, models.RoomOccupied, models.RoomMaintenance:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown room status")
	}

	if _, err := h.rooms.FindByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.rooms.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

func (h *RoomHandler) CreateRoomType(c echo.Context) error {
	var req dto.CreateRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Capacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and capacity (>0) are required")
	}

	rt := &models.RoomType{
		Name:         req.Name,
		Capacity:     req.Capacity,
		NightlyPrice: req.NightlyPrice,
	}
	if err := h.roomTypes.Create(c.Request().Context(), rt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rt)
}

func (h *RoomHandler) ListRoomTypes(c echo.Context) error {
	types, err := h.roomTypes.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, types)
}
