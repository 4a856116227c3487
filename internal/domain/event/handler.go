package event

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/events", h.SubmitEvent)
	api.GET("/events", h.ListEvents)
}

func (h *Handler) SubmitEvent(c echo.Context) error {
	var ev Event
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Submit(c.Request().Context(), &ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *Handler) ListEvents(c echo.Context) error {
	baseEntityID := c.QueryParam("baseEntityId")
	if baseEntityID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "baseEntityId is required")
	}
	items, err := h.svc.ListByPlan(c.Request().Context(), baseEntityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
