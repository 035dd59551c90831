package handler

import (
	"net/http"

	"github.com/hoteldesk/frontdesk/internal/dto"
	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/labstack/echo/v4"
)

type PromotionHandler struct {
	svc service.PromotionService
}

func NewPromotionHandler(svc service.PromotionService) *PromotionHandler {
	return &PromotionHandler{svc: svc}
}

func (h *PromotionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/promotions")
	g.POST("", h.CreatePromotion)
	g.GET("", h.ListPromotions)
	g.GET("/:id", h.GetPromotion)
	g.PUT("/:id", h.UpdatePromotion)
	g.PUT("/:id/active", h.SetActive)
}

func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req dto.CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	promo := req.ToModel()
	if err := h.svc.Create(c.Request().Context(), promo); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, promo)
}

func (h *PromotionHandler) ListPromotions(c echo.Context) error {
	promos, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, promos)
}

func (h *PromotionHandler) GetPromotion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	promo, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, promo)
}

func (h *PromotionHandler) UpdatePromotion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.svc.Get(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	var req dto.CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	promo := req.ToModel()
	promo.ID = id
	if err := h.svc.Update(c.Request().Context(), promo); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, promo)
}

func (h *PromotionHandler) SetActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.svc.Get(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	var req dto.SetPromotionActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.SetActive(c.Request().Context(), id, req.Active); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "active": req.Active})
}
