// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhive/internal/core"
)

type staticVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (v *staticVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return v.claims, v.err
}

type staticResolver struct {
	identities map[string]*Identity
}

func (r *staticResolver) ResolveByEmail(
	_ context.Context,
	email string,
) (*Identity, error) {
	id, ok := r.identities[email]
	if !ok {
		return nil, fmt.Errorf("resolve identity: %w", core.ErrNotFound)
	}
	return id, nil
}

func authChain(
	verifier TokenVerifier,
	resolver IdentityResolver,
) http.Handler {
	return Authenticator(verifier, resolver)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-User-ID", GetUserID(r.Context()))
			w.Header().Set("X-Full-Name", GetFullName(r.Context()))
			w.WriteHeader(http.StatusOK)
		}),
	)
}

func activeIdentity() *Identity {
	return &Identity{
		UserID:   "u1",
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
		Enabled:  true,
	}
}

func TestAuthenticator_MissingToken(t *testing.T) {
	handler := authChain(
		&staticVerifier{},
		&staticResolver{},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticator_PopulatesContext(t *testing.T) {
	handler := authChain(
		&staticVerifier{claims: &AccessTokenClaims{
			Email:    "ada@example.com",
			FullName: "Ada Lovelace",
		}},
		&staticResolver{identities: map[string]*Identity{
			"ada@example.com": activeIdentity(),
		}},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u1", rr.Header().Get("X-User-ID"))
	assert.Equal(t, "Ada Lovelace", rr.Header().Get("X-Full-Name"))
}

func TestAuthenticator_LockedAccount(t *testing.T) {
	locked := activeIdentity()
	locked.Locked = true

	handler := authChain(
		&staticVerifier{claims: &AccessTokenClaims{
			Email: "ada@example.com",
		}},
		&staticResolver{identities: map[string]*Identity{
			"ada@example.com": locked,
		}},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, core.CodeAccountLocked, resp.BusinessErrorCode)
}

func TestAuthenticator_DisabledAccount(t *testing.T) {
	disabled := activeIdentity()
	disabled.Enabled = false

	handler := authChain(
		&staticVerifier{claims: &AccessTokenClaims{
			Email: "ada@example.com",
		}},
		&staticResolver{identities: map[string]*Identity{
			"ada@example.com": disabled,
		}},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, core.CodeAccountDisabled, resp.BusinessErrorCode)
}

func TestAuthenticator_UnknownSubject(t *testing.T) {
	handler := authChain(
		&staticVerifier{claims: &AccessTokenClaims{
			Email: "ghost@example.com",
		}},
		&staticResolver{identities: map[string]*Identity{}},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	handler := authChain(
		&staticVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)},
		&staticResolver{},
	)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(r))
		})
	}
}
