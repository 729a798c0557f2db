// Package session owns the active credential and derives the current role
// from it on every check.
package session

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// ResolveRole derives the role carried by cred. The cached user record wins
// when it names a role; otherwise the token's claims are decoded without
// signature verification (the backend verifies on every request). Any
// failure degrades to RoleNone.
func ResolveRole(cred *domain.Credential) domain.Role {
	if cred == nil {
		return domain.RoleNone
	}
	if cred.User != nil && cred.User.RawRole != "" {
		return cred.User.Role()
	}
	return roleFromToken(cred.Token)
}

func roleFromToken(token string) (role domain.Role) {
	if token == "" {
		return domain.RoleNone
	}
	defer func() {
		if recover() != nil {
			role = domain.RoleNone
		}
	}()

	p := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := p.ParseUnverified(token, claims); err == nil {
		return roleFromClaims(claims)
	}

	// Only the payload matters here, so a header the parser rejects (unknown
	// alg, two segments, padded base64) does not hide the role.
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return domain.RoleNone
	}
	raw, err := p.DecodeSegment(strings.TrimRight(parts[1], "="))
	if err != nil {
		return domain.RoleNone
	}
	claims = jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return domain.RoleNone
	}
	return roleFromClaims(claims)
}

func roleFromClaims(claims jwt.MapClaims) domain.Role {
	if s, ok := claims["role"].(string); ok {
		if r := domain.ParseRole(s); r != domain.RoleNone {
			return r
		}
	}
	raw, ok := claims["roles"].([]any)
	if !ok {
		return domain.RoleNone
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		switch x := v.(type) {
		case string:
			names = append(names, x)
		case map[string]any:
			// Spring-style {"authority": "ROLE_ADMIN"} entries.
			if s, ok := x["authority"].(string); ok {
				names = append(names, s)
			}
		}
	}
	return domain.HighestRole(names)
}
