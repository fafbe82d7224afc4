package reconcile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/platform/auth"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleOperator, auth.RoleManager))
	g.PUT("/appointments/status", h.UpdateStatus)
	g.POST("/appointments/status/bulk", h.BulkUpdateStatus)
}

type updateStatusRequest struct {
	CPF       string `json:"cpf"`
	Date      string `json:"date"`
	Specialty string `json:"specialty"`
	Status    string `json:"status"`
}

// UpdateStatus applies a single triple-keyed edit through the cheap
// single-cell path.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.CPF == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cpf is required")
	}
	date, ok := appointment.ParseDate(req.Date)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	status := appointment.Status(req.Status)
	if !status.Valid() || status == appointment.StatusNone {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	ctx := c.Request().Context()
	snap, err := h.engine.Load(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	i := FindByKey(snap.Records, req.CPF, date, req.Specialty)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no appointment matches cpf, date and specialty")
	}

	if err := h.engine.PersistStatus(ctx, snap, snap.Records[i], status); err != nil {
		var perr *PersistError
		if errors.As(err, &perr) {
			// The edit is not lost; the operator retries explicitly.
			return echo.NewHTTPError(http.StatusConflict, perr.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}

type bulkUpdateRequest struct {
	Edits []Edit `json:"edits"`
}

type bulkUpdateResponse struct {
	Applied int      `json:"applied"`
	Missed  []string `json:"missed,omitempty"`
}

// BulkUpdateStatus is the operator panel's save-all flow: CPF-keyed
// edits applied in memory, then a wholesale sheet rewrite.
func (h *Handler) BulkUpdateStatus(c echo.Context) error {
	var req bulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Edits) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "edits are required")
	}
	for _, e := range req.Edits {
		if e.CPF == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "edit without cpf")
		}
		if !e.Status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status for cpf "+e.CPF)
		}
	}

	ctx := c.Request().Context()
	snap, err := h.engine.Load(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	missed := h.engine.ApplyEdits(snap, req.Edits)
	if err := h.engine.PersistAll(ctx, snap); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, bulkUpdateResponse{
		Applied: len(req.Edits) - len(missed),
		Missed:  missed,
	})
}
