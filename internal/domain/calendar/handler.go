package calendar

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calendar/week", h.GetWeek)
	api.GET("/calendar/doctors", h.ListDoctors)
	api.GET("/calendar/departments", h.ListDepartments)
	api.POST("/calendar/refresh", h.TriggerRefresh)
}

// weekResponse wraps the composed view with the non-fatal refresh error, if
// any, so clients can keep the previous grid visible behind an error banner.
type weekResponse struct {
	Week  WeekView `json:"week"`
	Error string   `json:"error,omitempty"`
}

// GetWeek serves the laid-out weekly grid. Query parameters: week_start
// (YYYY-MM-DD, defaults to the current week), doctor and department
// (usernames/names or "all").
func (h *Handler) GetWeek(c echo.Context) error {
	q := WeekQuery{
		Doctor:     c.QueryParam("doctor"),
		Department: c.QueryParam("department"),
	}

	if ws := c.QueryParam("week_start"); ws != "" {
		day, err := time.ParseInLocation("2006-01-02", ws, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
		}
		q.WeekStart = day
	} else {
		q.WeekStart = time.Now()
	}

	view, err := h.svc.WeekView(c.Request().Context(), q)
	if err != nil {
		// No snapshot at all: nothing to render.
		if len(view.HourSlots) == 0 {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.JSON(http.StatusOK, weekResponse{Week: view, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, weekResponse{Week: view})
}

// ListDoctors serves the doctor filter options.
func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, _, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return h.paginated(c, doctors)
}

// ListDepartments serves the department filter options.
func (h *Handler) ListDepartments(c echo.Context) error {
	_, departments, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return h.paginated(c, departments)
}

func (h *Handler) paginated(c echo.Context, opts []Option) error {
	pg := pagination.FromContext(c)
	total := len(opts)
	lo := pg.Offset
	if lo > total {
		lo = total
	}
	hi := lo + pg.Limit
	if hi > total {
		hi = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(opts[lo:hi], total, pg.Limit, pg.Offset))
}

// TriggerRefresh forces an immediate snapshot refresh, superseding any
// in-flight fetch.
func (h *Handler) TriggerRefresh(c echo.Context) error {
	if err := h.svc.Refresh(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
