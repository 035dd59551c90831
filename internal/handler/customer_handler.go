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

type CustomerHandler struct {
	customers repository.CustomerRepository
}

func NewCustomerHandler(customers repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/customers")
	g.POST("", h.CreateCustomer)
	g.GET("", h.ListCustomers)
	g.GET("/:id", h.GetCustomer)
	g.PUT("/:id", h.UpdateCustomer)
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	customer, httpErr := h.bindCustomer(c, &models.Customer{})
	if httpErr != nil {
		return httpErr
	}
	if err := h.customers.Create(c.Request().Context(), customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	existing, err := h.customers.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	customer, httpErr := h.bindCustomer(c, existing)
	if httpErr != nil {
		return httpErr
	}
	if err := h.customers.Update(c.Request().Context(), customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) bindCustomer(c echo.Context, into *models.Customer) (*models.Customer, *echo.HTTPError) {
	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FullName == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "full_name is required")
	}

	into.FullName = req.FullName
	into.Phone = req.Phone
	into.Email = req.Email
	into.MembershipTier = req.MembershipTier
	if req.BirthDate != "" {
		birth, err := dto.ParseDate(req.BirthDate)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "birth_date must be a YYYY-MM-DD date")
		}
		into.BirthDate = birth
	}
	return into, nil
}
