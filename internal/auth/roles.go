package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

var backofficeRoles = map[string]bool{
	models.RoleAdmin:  true,
	models.RoleBarber: true,
}

// CanAccessBackoffice reports whether a role may enter the staff dashboard.
// Roles are uppercase-normalized before the allow-list check.
func CanAccessBackoffice(role string) bool {
	return backofficeRoles[strings.ToUpper(strings.TrimSpace(role))]
}

// DecodeRoleUnverified extracts the role claim from a JWT without checking
// the signature. The web layer uses it to pick a landing page before a
// verified request has been made; it is never an authorization decision,
// every admin route re-validates the token in middleware.
func DecodeRoleUnverified(tokenStr string) (string, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return "", errors.New("malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", err
	}

	var claims struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", err
	}

	return strings.ToUpper(claims.Role), nil
}
