// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageResponse_Flags(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		total      int64
		first      bool
		last       bool
		totalPages int
	}{
		{"single page", 0, 10, 3, true, true, 1},
		{"first of many", 0, 10, 25, true, false, 3},
		{"middle", 1, 10, 25, false, false, 3},
		{"last", 2, 10, 25, false, true, 3},
		{"empty", 0, 10, 0, true, true, 0},
		{"exact boundary", 1, 10, 20, false, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse([]string{}, tt.page, tt.size, tt.total)
			assert.Equal(t, tt.first, resp.First)
			assert.Equal(t, tt.last, resp.Last)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
			assert.Equal(t, tt.total, resp.TotalElements)
			assert.NotNil(t, resp.Content)
		})
	}
}

func TestNewPageResponse_NilContentBecomesEmptySlice(t *testing.T) {
	resp := NewPageResponse[string](nil, 0, 10, 0)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":[]`)
}

func TestJSONError_BusinessError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, BusinessError(
		CodeAccountLocked, "user account is locked",
	))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeAccountLocked, resp.BusinessErrorCode)
	assert.Equal(t, "User account locked", resp.BusinessErrorDescription)
	assert.Equal(t, "user account is locked", resp.Error)
}

func TestJSONError_OperationNotPermitted(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, OperationNotPermittedError("You cannot borrow your own book"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.BusinessErrorCode)
	assert.Empty(t, resp.BusinessErrorDescription)
	assert.Equal(t, "You cannot borrow your own book", resp.Error)
}

func TestJSONError_UnclassifiedFallsBackTo500(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 0, DefaultPageSize},
		{"explicit", "page=2&size=25", 2, 25},
		{"negative page ignored", "page=-1", 0, DefaultPageSize},
		{"zero size ignored", "size=0", 0, DefaultPageSize},
		{"clamped to max", "size=5000", 0, MaxPageSize},
		{"garbage ignored", "page=abc&size=xyz", 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(
				http.MethodGet, "/books?"+tt.query, nil,
			)
			page, size := ParsePagination(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
