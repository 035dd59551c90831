package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/labstack/echo/v4"
)

// domainError maps service sentinels onto HTTP statuses: validation
// failures are 400, missing records 404, lost races and frozen orders
// 409. Anything unrecognized is a 500.
func domainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidWeight),
		errors.Is(err, service.ErrUnknownOption),
		errors.Is(err, service.ErrInvalidPromotionConfig),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRoomUnderMaintenance):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPromotionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrRoomConflict),
		errors.Is(err, service.ErrOrderFrozen):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
