package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, Session{Username: "gestor", Role: RoleManager}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Username != "gestor" {
		t.Errorf("expected username gestor, got %s", sess.Username)
	}
	if sess.Role != RoleManager {
		t.Errorf("expected role manager, got %s", sess.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, _ := IssueToken(testSecret, Session{Username: "gestor", Role: RoleManager}, time.Hour)
	if _, err := ParseToken([]byte("other-secret"), tok); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok, _ := IssueToken(testSecret, Session{Username: "gestor", Role: RoleManager}, -time.Minute)
	if _, err := ParseToken(testSecret, tok); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	creds := Credentials{
		ManagerUser:  "gestor",
		ManagerPass:  hash,
		OperatorUser: "operador",
		OperatorPass: "plain-pass",
	}

	sess, err := creds.Authenticate("gestor", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Role != RoleManager {
		t.Errorf("expected manager role, got %s", sess.Role)
	}

	sess, err = creds.Authenticate("operador", "plain-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Role != RoleOperator {
		t.Errorf("expected operator role, got %s", sess.Role)
	}

	if _, err := creds.Authenticate("gestor", "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := creds.Authenticate("nobody", "s3cret"); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestCanAccess(t *testing.T) {
	manager := Session{Username: "gestor", Role: RoleManager}
	operator := Session{Username: "operador", Role: RoleOperator}

	if !CanAccess(manager, ResourceReports) {
		t.Error("manager should access reports")
	}
	if CanAccess(operator, ResourceReports) {
		t.Error("operator should not access reports")
	}
	if !CanAccess(operator, ResourceOutreach) {
		t.Error("operator should access outreach")
	}
	if CanAccess(Session{Role: "intruder"}, ResourceAppointments) {
		t.Error("unknown role should access nothing")
	}
}

func TestMiddleware_RejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(testSecret)
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_SkipsLoginPath(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(testSecret, "/api/v1/login")
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_StoresSession(t *testing.T) {
	tok, _ := IssueToken(testSecret, Session{Username: "operador", Role: RoleOperator}, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(testSecret)
	h := mw(func(c echo.Context) error {
		sess, ok := SessionFromContext(c.Request().Context())
		if !ok {
			t.Error("expected session in context")
		}
		if sess.Username != "operador" {
			t.Errorf("expected operador, got %s", sess.Username)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	tok, _ := IssueToken(testSecret, Session{Username: "operador", Role: RoleOperator}, time.Hour)

	call := func(requiredRoles ...string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := Middleware(testSecret)(RequireRole(requiredRoles...)(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		}))
		return h(c)
	}

	if err := call(RoleOperator); err != nil {
		t.Errorf("operator should pass operator check: %v", err)
	}
	err := call(RoleManager)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for operator on manager route, got %v", err)
	}
}
