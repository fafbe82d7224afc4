package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles known to the panel. Managers see everything; operators are
// restricted from the aggregate dashboards.
const (
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// Session identifies an authenticated operator for the duration of a
// request. It is carried explicitly instead of living in ambient state.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueToken signs an HS256 session token for the given session.
func IssueToken(secret []byte, s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: s.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a session token and returns the session it carries.
func ParseToken(secret []byte, tokenStr string) (Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Session{}, fmt.Errorf("invalid token")
	}
	if claims.Role != RoleManager && claims.Role != RoleOperator {
		return Session{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return Session{Username: claims.Subject, Role: claims.Role}, nil
}

// CanAccess reports whether the session may use the named resource.
// Managers may access everything; operators everything except the
// aggregate dashboards.
func CanAccess(s Session, resource string) bool {
	switch s.Role {
	case RoleManager:
		return true
	case RoleOperator:
		return resource != ResourceReports
	default:
		return false
	}
}

// Resource names used with CanAccess.
const (
	ResourceAppointments = "appointments"
	ResourceOutreach     = "outreach"
	ResourceReports      = "reports"
)
