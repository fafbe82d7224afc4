package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the two fixed login pairs supplied via configuration.
// Passwords may be stored either as bcrypt hashes or as plain values
// (dev convenience); bcrypt is detected by its "$2" prefix.
type Credentials struct {
	ManagerUser  string
	ManagerPass  string
	OperatorUser string
	OperatorPass string
}

// ErrInvalidCredentials is returned for any failed login attempt. The
// message never distinguishes unknown user from wrong password.
var ErrInvalidCredentials = fmt.Errorf("invalid username or password")

// Authenticate checks a username/password pair against the configured
// credentials and returns the matching session.
func (c Credentials) Authenticate(username, password string) (Session, error) {
	switch {
	case c.ManagerUser != "" && username == c.ManagerUser:
		if !checkPassword(c.ManagerPass, password) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{Username: username, Role: RoleManager}, nil
	case c.OperatorUser != "" && username == c.OperatorUser:
		if !checkPassword(c.OperatorPass, password) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{Username: username, Role: RoleOperator}, nil
	}
	return Session{}, ErrInvalidCredentials
}

func checkPassword(stored, given string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// HashPassword produces a bcrypt hash suitable for the *_PASS settings.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), 12)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
