package session

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)
	return tok
}

func TestResolveRole_CachedUserWins(t *testing.T) {
	cred := &domain.Credential{
		Token: signed(t, jwt.MapClaims{"role": "ROLE_KE_TOAN"}),
		User:  &domain.User{Username: "an", RawRole: "ROLE_TO_TRUONG"},
	}
	assert.Equal(t, domain.RoleToTruong, ResolveRole(cred))
}

func TestResolveRole_FallsBackToToken(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   domain.Role
	}{
		{"legacy spelling", jwt.MapClaims{"role": "ROLE_ADMIN"}, domain.RoleAdmin},
		{"bare spelling", jwt.MapClaims{"role": "KE_TOAN"}, domain.RoleKeToan},
		{"roles array", jwt.MapClaims{"roles": []string{"ROLE_USER", "ROLE_ADMIN"}}, domain.RoleAdmin},
		{"roles authorities", jwt.MapClaims{"roles": []map[string]string{{"authority": "ROLE_TO_TRUONG"}}}, domain.RoleToTruong},
		{"unknown role string", jwt.MapClaims{"role": "OWNER"}, domain.RoleNone},
		{"no role claims", jwt.MapClaims{"sub": "an"}, domain.RoleNone},
		{"role of wrong type", jwt.MapClaims{"role": 42}, domain.RoleNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := &domain.Credential{Token: signed(t, tt.claims), User: &domain.User{Username: "an"}}
			assert.Equal(t, tt.want, ResolveRole(cred))
		})
	}
}

func TestResolveRole_MalformedTokens(t *testing.T) {
	good := signed(t, jwt.MapClaims{"role": "ADMIN"})
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	tokens := map[string]string{
		"empty":         "",
		"one segment":   "abc",
		"truncated":     good[:len(good)/3],
		"not base64":    header + ".!!!*.sig",
		"not json":      header + "." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".sig",
		"json array":    header + "." + base64.RawURLEncoding.EncodeToString([]byte(`["ADMIN"]`)) + ".sig",
		"garbage bytes": "\x00\xff.\x00.\x00",
	}
	for name, tok := range tokens {
		t.Run(name, func(t *testing.T) {
			var role domain.Role
			assert.NotPanics(t, func() { role = ResolveRole(&domain.Credential{Token: tok}) })
			assert.Equal(t, domain.RoleNone, role)
			assert.False(t, role.IsAdmin())
			assert.False(t, role.CanAccessFeeManagement())
		})
	}
}

func TestResolveRole_PayloadDecodedDespiteHeader(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"ROLE_ADMIN"}`))
	padded := base64.URLEncoding.EncodeToString([]byte(`{"role":"ROLE_KE_TOAN"}`))
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	oddAlg := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"XX999"}`))

	tokens := map[string]struct {
		token string
		want  domain.Role
	}{
		"garbage header": {"###." + payload + ".sig", domain.RoleAdmin},
		"unknown alg":    {oddAlg + "." + payload + ".sig", domain.RoleAdmin},
		"two segments":   {header + "." + payload, domain.RoleAdmin},
		"padded payload": {header + "." + padded + ".sig", domain.RoleKeToan},
	}
	for name, tt := range tokens {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(&domain.Credential{Token: tt.token}))
		})
	}
}

func TestResolveRole_NilCredential(t *testing.T) {
	assert.Equal(t, domain.RoleNone, ResolveRole(nil))
}

func TestResolveRole_SingleClaimSatisfiesOnePredicate(t *testing.T) {
	for _, raw := range []string{"ADMIN", "TO_TRUONG", "KE_TOAN", "USER"} {
		r := ResolveRole(&domain.Credential{Token: signed(t, jwt.MapClaims{"role": raw})})
		held := 0
		for _, ok := range []bool{r.IsAdmin(), r.IsToTruong(), r.IsKeToan()} {
			if ok {
				held++
			}
		}
		assert.LessOrEqual(t, held, 1, raw)
	}
}
