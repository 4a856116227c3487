package jurisdiction

import (
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/jurisdictions/hierarchy", h.GetHierarchy)
	api.GET("/jurisdictions/:id", h.GetJurisdiction)
	api.POST("/jurisdictions", h.UpsertJurisdiction)
}

func (h *Handler) GetHierarchy(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	out, err := h.svc.Hierarchy(c.Request().Context(), c.QueryParam("parent"), page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetJurisdiction(c echo.Context) error {
	j, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == pgx.ErrNoRows {
			return echo.NewHTTPError(http.StatusNotFound, "jurisdiction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, j)
}

func (h *Handler) UpsertJurisdiction(c echo.Context) error {
	var j Jurisdiction
	if err := c.Bind(&j); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if j.ID == "" || j.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and name are required")
	}
	if err := h.svc.Upsert(c.Request().Context(), &j); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, j)
}
