package appointment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painel/painel/internal/platform/auth"
	"github.com/painel/painel/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleOperator, auth.RoleManager))
	g.GET("/appointments", h.List)
	g.GET("/appointments/specialties", h.ListSpecialties)
}

// List serves the operator panel's filtered view. Filters compose as a
// conjunction; omitting specialty and status filters nothing out.
func (h *Handler) List(c echo.Context) error {
	q, err := QueryFromRequest(c)
	if err != nil {
		return err
	}

	records, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pg := pagination.FromContext(c)
	page := paginate(records, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(records), pg.Limit, pg.Offset))
}

func (h *Handler) ListSpecialties(c echo.Context) error {
	specialties, err := h.svc.ListSpecialties(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, specialties)
}

// QueryFromRequest parses the shared filter parameters (from, to,
// specialty, status) off a request. Used by every filtered endpoint.
func QueryFromRequest(c echo.Context) (Query, error) {
	var q Query

	if raw := c.QueryParam("from"); raw != "" {
		from, ok := ParseDate(raw)
		if !ok {
			return q, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		q.From = from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, ok := ParseDate(raw)
		if !ok {
			return q, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		q.To = to
	}

	q.Specialties = c.QueryParams()["specialty"]
	for _, raw := range c.QueryParams()["status"] {
		st := Status(raw)
		if !st.Valid() {
			return q, echo.NewHTTPError(http.StatusBadRequest, "invalid status "+raw)
		}
		q.Statuses = append(q.Statuses, st)
	}
	return q, nil
}

func paginate(records []Record, pg pagination.Params) []Record {
	if pg.Offset >= len(records) {
		return []Record{}
	}
	end := pg.Offset + pg.Limit
	if end > len(records) {
		end = len(records)
	}
	return records[pg.Offset:end]
}
