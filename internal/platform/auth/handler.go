package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	creds  Credentials
	secret []byte
	ttl    time.Duration
}

func NewHandler(creds Credentials, secret []byte, ttl time.Duration) *Handler {
	return &Handler{creds: creds, secret: secret, ttl: ttl}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login checks the fixed credential pairs and issues a session token.
// Failed attempts get a uniform 401; there is no lockout or backoff.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.creds.Authenticate(req.Username, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	}

	token, err := IssueToken(h.secret, sess, h.ttl)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue session token")
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Username: sess.Username,
		Role:     sess.Role,
	})
}
