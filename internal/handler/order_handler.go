package handler

import (
	"net/http"

	"github.com/hoteldesk/frontdesk/internal/dto"
	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc     service.OrderService
	pricing service.PricingService
}

func NewOrderHandler(svc service.OrderService, pricing service.PricingService) *OrderHandler {
	return &OrderHandler{svc: svc, pricing: pricing}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/orders")
	g.POST("", h.CreateOrder)
	g.POST("/price-line", h.PriceLine)
	g.GET("/:id", h.GetOrder)
	g.PUT("/:id/lines", h.ReplaceLines)
	g.POST("/:id/promotion/preview", h.PreviewPromotion)
	g.POST("/:id/finalize", h.Finalize)
	g.POST("/:id/cancel", h.Cancel)

	e.GET("/api/v1/customers/:id/orders", h.ListByCustomer)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	inputs := make([]service.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		inputs[i] = l.ToInput()
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), req.CustomerID, req.PaymentMethod, req.EventCode, inputs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// PriceLine quotes one line without creating anything; the front desk
// uses it to show a price while the clerk is still composing the order.
func (h *OrderHandler) PriceLine(c echo.Context) error {
	var req dto.PriceLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	price, err := h.pricing.PriceOrderLine(c.Request().Context(), req.ServiceID, req.Quantity,
		service.LineDetail{Weight: req.Weight, Package: req.Package})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, price)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) ReplaceLines(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReplaceLinesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	inputs := make([]service.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		inputs[i] = l.ToInput()
	}

	order, err := h.svc.ReplaceLines(c.Request().Context(), id, inputs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) PreviewPromotion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PromotionPreviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.svc.PreviewPromotion(c.Request().Context(), id, req.EventCode)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPromotionPreviewResponse(res))
}

func (h *OrderHandler) Finalize(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.FinalizeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.Finalize(c.Request().Context(), id, req.EventCode)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) ListByCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	orders, err := h.svc.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	resp := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = dto.ToOrderResponse(&orders[i])
	}
	return c.JSON(http.StatusOK, resp)
}
