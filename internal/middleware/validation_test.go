package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "pmocli/internal/errors"
	api "pmocli/pkg/contracts/api/v1"
)

func newValidationMiddleware() *ValidationMiddleware {
	logger := noopLogger()
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
}

func TestValidateStructReportRequest(t *testing.T) {
	m := newValidationMiddleware()

	tests := []struct {
		name    string
		req     api.ReportGenerateRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  api.ReportGenerateRequest{Title: "Q1 Portfolio Review", TopN: 10},
		},
		{
			name: "empty is valid, fields optional",
			req:  api.ReportGenerateRequest{},
		},
		{
			name:    "title too short",
			req:     api.ReportGenerateRequest{Title: "ab"},
			wantErr: true,
		},
		{
			name:    "top_n below minimum",
			req:     api.ReportGenerateRequest{TopN: 2},
			wantErr: true,
		},
		{
			name:    "top_n above maximum",
			req:     api.ReportGenerateRequest{TopN: 51},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateStruct(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				var apiErr *apierrors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	m := newValidationMiddleware()
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"title": "Q1",` // truncated
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateRequestSkipsGet(t *testing.T) {
	m := newValidationMiddleware()
	handler := m.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/views", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContentTypeValidator(t *testing.T) {
	handler := ContentTypeValidator("application/json")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// A bodyless POST has no content type to police.
	req = httptest.NewRequest(http.MethodPost, "/api/report", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSlugValidator(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"executive-overview", true},
		{"vendor-analysis", true},
		{"risk-compliance", true},
		{"Executive", false},
		{"-leading", false},
		{"trailing-", false},
		{"has space", false},
		{"", false},
	}

	m := newValidationMiddleware()
	type probe struct {
		Slug string `validate:"slug"`
	}
	for _, tt := range tests {
		err := m.ValidateStruct(probe{Slug: tt.slug})
		if tt.valid {
			assert.NoError(t, err, "slug %q", tt.slug)
		} else {
			assert.Error(t, err, "slug %q", tt.slug)
		}
	}
}

func TestQueryParamValidator(t *testing.T) {
	logger := noopLogger()
	v := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))

	r := httptest.NewRequest(http.MethodGet, "/api/views/financial-insights?top=15", nil)
	w := httptest.NewRecorder()
	got, ok := v.ValidateInt(w, r, "top", 3, 50, 10)
	require.True(t, ok)
	assert.Equal(t, 15, got)

	r = httptest.NewRequest(http.MethodGet, "/api/views/financial-insights", nil)
	got, ok = v.ValidateInt(httptest.NewRecorder(), r, "top", 3, 50, 10)
	require.True(t, ok)
	assert.Equal(t, 10, got)

	r = httptest.NewRequest(http.MethodGet, "/api/views/financial-insights?top=99", nil)
	w = httptest.NewRecorder()
	_, ok = v.ValidateInt(w, r, "top", 3, 50, 10)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
