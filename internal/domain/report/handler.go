package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/platform/auth"
)

// Handler serves the aggregate dashboards; managers only.
type Handler struct {
	loader appointment.Loader
}

func NewHandler(loader appointment.Loader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports", auth.RequireRole(auth.RoleManager))
	g.GET("/kpis", h.GetKPIs)
	g.GET("/status-histogram", h.GetStatusHistogram)
	g.GET("/export", h.Export)
}

func (h *Handler) filtered(c echo.Context) ([]appointment.Record, error) {
	q, err := appointment.QueryFromRequest(c)
	if err != nil {
		return nil, err
	}
	snap, err := h.loader.Load(c.Request().Context())
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return appointment.Filter(snap.Records, q), nil
}

func (h *Handler) GetKPIs(c echo.Context) error {
	records, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Compute(records))
}

func (h *Handler) GetStatusHistogram(c echo.Context) error {
	records, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusHistogram(records))
}

// Export streams the currently filtered view as CSV.
func (h *Handler) Export(c echo.Context) error {
	records, err := h.filtered(c)
	if err != nil {
		return err
	}

	filename := "consultas_" + time.Now().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return WriteCSV(c.Response(), records)
}
