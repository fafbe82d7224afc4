package outreach

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/domain/reconcile"
	"github.com/painel/painel/internal/platform/auth"
)

type Handler struct {
	svc           *Service
	defaultMonths int
}

func NewHandler(svc *Service, defaultMonths int) *Handler {
	return &Handler{svc: svc, defaultMonths: defaultMonths}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleOperator, auth.RoleManager))
	g.GET("/outreach/targets", h.Targets)
	g.POST("/outreach/targets/message-sent", h.MarkMessageSent)
}

// Targets lists patients overdue for return contact. With format=pdf the
// same list is rendered as a printable table.
func (h *Handler) Targets(c echo.Context) error {
	specialty := c.QueryParam("specialty")
	if specialty == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "specialty is required")
	}

	months := h.defaultMonths
	if raw := c.QueryParam("months"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "months must be a positive integer")
		}
		months = m
	}

	summaries, err := h.svc.Targets(c.Request().Context(), specialty, months)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if c.QueryParam("format") == "pdf" {
		c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pacientes_alvo.pdf"`)
		c.Response().WriteHeader(http.StatusOK)
		return WritePDF(c.Response(), summaries, specialty, months)
	}

	if summaries == nil {
		summaries = []Summary{}
	}
	return c.JSON(http.StatusOK, summaries)
}

type messageSentRequest struct {
	CPF       string `json:"cpf"`
	Date      string `json:"date"`
	Specialty string `json:"specialty"`
}

func (h *Handler) MarkMessageSent(c echo.Context) error {
	var req messageSentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.CPF == "" || req.Specialty == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cpf and specialty are required")
	}
	date, ok := appointment.ParseDate(req.Date)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	sess, _ := auth.SessionFromContext(c.Request().Context())

	err := h.svc.MarkMessageSent(c.Request().Context(), req.CPF, date, req.Specialty, sess.Username)
	if err != nil {
		var perr *reconcile.PersistError
		switch {
		case errors.As(err, &perr):
			return echo.NewHTTPError(http.StatusConflict, perr.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			// The status write may have landed; only the logging failed.
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": appointment.StatusMessageSent.Label()})
}
