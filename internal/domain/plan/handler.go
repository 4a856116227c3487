package plan

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/opensrp/plan-service/internal/domain/event"
	"github.com/opensrp/plan-service/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/plans", h.ListPlans)
	api.GET("/plans/:id", h.GetPlan)
	api.POST("/plans", h.CreatePlan)
	api.PUT("/plans/:id", h.UpdatePlan)
	api.POST("/plans/:id/retire", h.RetirePlan)
}

func (h *Handler) CreatePlan(c echo.Context) error {
	var p PlanDefinition
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePlan(c echo.Context) error {
	var p PlanDefinition
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if id := c.Param("id"); p.Identifier != "" && p.Identifier != id {
		return echo.NewHTTPError(http.StatusBadRequest, "identifier mismatch")
	} else if p.Identifier == "" {
		p.Identifier = id
	}
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPlan(c echo.Context) error {
	p, err := h.svc.GetByIdentifier(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == pgx.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "plan not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPlans(c echo.Context) error {
	pg := pagination.FromContext(c)

	var (
		items []*PlanDefinition
		total int
		err   error
	)
	if it := c.QueryParam("interventionType"); it != "" {
		items, total, err = h.svc.ListByInterventionType(c.Request().Context(), InterventionType(it), pg.Limit, pg.Offset)
	} else {
		items, total, err = h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type retireRequest struct {
	Reason     event.RetireReason `json:"reason"`
	ProviderID string             `json:"providerId"`
}

func (h *Handler) RetirePlan(c echo.Context) error {
	var req retireRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ev, err := h.svc.Retire(c.Request().Context(), c.Param("id"), req.Reason, req.ProviderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "plan not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ev)
}
