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

type ServiceHandler struct {
	services repository.ServiceRepository
}

func NewServiceHandler(services repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{services: services}
}

func (h *ServiceHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/services")
	g.POST("", h.CreateService)
	g.GET("", h.ListServices)
	g.GET("/:id", h.GetService)
	g.PUT("/:id/options", h.ReplaceOptions)
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req dto.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	switch req.Type {
	case models.ServiceFixed, models.ServicePerUnit:
		if req.Price < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
		}
	case models.ServiceSelectable:
		if len(req.Options) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "selectable services need at least one option")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown service type")
	}

	fulfillment := req.FulfillmentType
	if fulfillment == "" {
		fulfillment = models.FulfillmentDirect
	}

	svc := &models.Service{
		Name:            req.Name,
		Type:            req.Type,
		FulfillmentType: fulfillment,
		Price:           req.Price,
		UnitName:        req.UnitName,
	}
	for _, o := range req.Options {
		svc.Options = append(svc.Options, models.ServiceOption{Name: o.Name, Price: o.Price})
	}

	if err := h.services.Create(c.Request().Context(), svc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) ListServices(c echo.Context) error {
	services, err := h.services.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	svc, err := h.services.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, svc)
}

// ReplaceOptions swaps a selectable service's option set. Completed order
// lines keep their frozen prices; only new orders see the new options.
func (h *ServiceHandler) ReplaceOptions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req []dto.ServiceOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	svc, err := h.services.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if svc.Type != models.ServiceSelectable {
		return echo.NewHTTPError(http.StatusBadRequest, "only selectable services carry options")
	}

	options := make([]models.ServiceOption, len(req))
	for i, o := range req {
		options[i] = models.ServiceOption{ServiceID: id, Name: o.Name, Price: o.Price}
	}
	if err := h.services.ReplaceOptions(c.Request().Context(), id, options); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	svc.Options = options
	return c.JSON(http.StatusOK, svc)
}
