package session

import (
	"github.com/golang-jwt/jwt/v5"

	"workday-web/internal/model"
)

// IdentityFromToken recovers a display identity from the upstream bearer
// token when the login response carries no user object. The token is
// issued and verified by the upstream API; here it is only inspected, so
// the parse is deliberately unverified.
func IdentityFromToken(token string) model.Identity {
	identity := model.Identity{Name: "Usuário"}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return identity
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return identity
	}

	if sub, subErr := claims.GetSubject(); subErr == nil && sub != "" {
		identity.Login = sub
	}
	if login, ok := claims["login"].(string); ok && login != "" {
		identity.Login = login
	}
	if name, ok := claims["nome"].(string); ok && name != "" {
		identity.Name = name
	} else if identity.Login != "" {
		identity.Name = identity.Login
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	if id, ok := claims["id"].(float64); ok {
		identity.ID = int(id)
	}

	return identity
}
