// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhive/internal/core"
)

func doRequest(
	t *testing.T,
	handler *Handler,
	method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	return rr
}

func TestRegisterEndpoint_Accepted(t *testing.T) {
	f := newAuthFixture(t)
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/register", `{
		"firstname": "Ada",
		"lastname": "Lovelace",
		"email": "ada@example.com",
		"password": "correct-horse"
	}`)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	f.mailer.waitForMail(t)
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	f := newAuthFixture(t)
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/register", `{
		"firstname": "",
		"lastname": "Lovelace",
		"email": "not-an-email",
		"password": "short"
	}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.ValidationErrors, "firstname")
	assert.Contains(t, resp.ValidationErrors, "email")
	assert.Contains(t, resp.ValidationErrors, "password")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "ada@example.com", "whatever-pass")
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/register", `{
		"firstname": "Ada",
		"lastname": "Lovelace",
		"email": "ada@example.com",
		"password": "correct-horse"
	}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAuthenticateEndpoint_ReturnsToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "ada@example.com", "correct-horse")
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/authenticate", `{
		"email": "ada@example.com",
		"password": "correct-horse"
	}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp AuthenticationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthenticateEndpoint_BadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "ada@example.com", "correct-horse")
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/authenticate", `{
		"email": "ada@example.com",
		"password": "wrong-password"
	}`)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, core.CodeBadCredentials, resp.BusinessErrorCode)
	assert.Equal(t,
		"Username or password is incorrect",
		resp.BusinessErrorDescription,
	)
}

func TestAuthenticateEndpoint_LockedAccount(t *testing.T) {
	f := newAuthFixture(t)
	u := f.addEnabledUser(t, "ada@example.com", "correct-horse")
	u.AccountLocked = true
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/authenticate", `{
		"email": "ada@example.com",
		"password": "correct-horse"
	}`)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, core.CodeAccountLocked, resp.BusinessErrorCode)
}

func TestActivateEndpoint_FullFlow(t *testing.T) {
	f := newAuthFixture(t)
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodPost, "/register", `{
		"firstname": "Ada",
		"lastname": "Lovelace",
		"email": "ada@example.com",
		"password": "correct-horse"
	}`)
	require.Equal(t, http.StatusAccepted, rr.Code)
	mail := f.mailer.waitForMail(t)

	rr = doRequest(t, handler, http.MethodGet,
		"/activate-account?token="+mail.code, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.users.byEmail["ada@example.com"].Enabled)

	// Replaying the code is rejected.
	rr = doRequest(t, handler, http.MethodGet,
		"/activate-account?token="+mail.code, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestActivateEndpoint_MissingToken(t *testing.T) {
	f := newAuthFixture(t)
	handler := NewHandler(f.svc)

	rr := doRequest(t, handler, http.MethodGet, "/activate-account", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
