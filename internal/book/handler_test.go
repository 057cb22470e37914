// AngelaMos | 2026
// handler_test.go

package book

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhive/internal/core"
	"github.com/carterperez-dev/bookhive/internal/middleware"
)

func authedRequest(
	method, target, userID string,
	body *bytes.Buffer,
) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	return rr
}

func TestCreateEndpoint_ReturnsID(t *testing.T) {
	f := newFixture(t)
	handler := NewHandler(f.svc)

	body := bytes.NewBufferString(`{
		"title": "Dune",
		"authorName": "Frank Herbert",
		"isbn": "9780441172719",
		"synopsis": "spice and politics",
		"shareable": true
	}`)

	rr := serve(handler, authedRequest(http.MethodPost, "/", "owner", body))
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp IDResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "owner", f.books.books[resp.ID].OwnerID)
}

func TestCreateEndpoint_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	handler := NewHandler(f.svc)

	body := bytes.NewBufferString(`{"title": ""}`)

	rr := serve(handler, authedRequest(http.MethodPost, "/", "owner", body))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.ValidationErrors, "title")
	assert.Contains(t, resp.ValidationErrors, "authorName")
}

func TestFindByIDEndpoint_NotFound(t *testing.T) {
	f := newFixture(t)
	handler := NewHandler(f.svc)

	rr := serve(handler, authedRequest(
		http.MethodGet, "/missing-id", "reader", nil,
	))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListEndpoint_PaginationEnvelope(t *testing.T) {
	f := newFixture(t)
	f.addBook("b1", "other", true, false)
	f.addBook("b2", "other", true, false)
	handler := NewHandler(f.svc)

	rr := serve(handler, authedRequest(
		http.MethodGet, "/?page=0&size=1", "me", nil,
	))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp core.PageResponse[BookResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Content, 1)
	assert.Equal(t, int64(2), resp.TotalElements)
	assert.Equal(t, 2, resp.TotalPages)
	assert.True(t, resp.First)
	assert.False(t, resp.Last)
}

func TestBorrowEndpoint_GuardViolation(t *testing.T) {
	f := newFixture(t)
	f.addBook("b1", "owner", true, false)
	handler := NewHandler(f.svc)

	rr := serve(handler, authedRequest(
		http.MethodPost, "/borrow/b1", "owner", nil,
	))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "You cannot borrow your own book", resp.Error)
}

func TestLendingEndpoints_FullFlow(t *testing.T) {
	f := newFixture(t)
	f.addBook("b1", "bob", true, false)
	handler := NewHandler(f.svc)

	rr := serve(handler, authedRequest(
		http.MethodPost, "/borrow/b1", "alice", nil,
	))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(handler, authedRequest(
		http.MethodPatch, "/borrow/return/b1", "alice", nil,
	))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(handler, authedRequest(
		http.MethodPatch, "/borrow/return/approve/b1", "bob", nil,
	))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestUploadCoverEndpoint(t *testing.T) {
	f := newFixture(t)
	f.addBook("b1", "owner", true, false)
	handler := NewHandler(f.svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := authedRequest(http.MethodPost, "/cover/b1", "owner", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := serve(handler, req)
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.NotNil(t, f.books.books["b1"].CoverPath)
	assert.True(t, strings.HasPrefix(
		*f.books.books["b1"].CoverPath, "users/owner/",
	))
}

func TestUploadCoverEndpoint_MissingFile(t *testing.T) {
	f := newFixture(t)
	f.addBook("b1", "owner", true, false)
	handler := NewHandler(f.svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := authedRequest(http.MethodPost, "/cover/b1", "owner", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := serve(handler, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
