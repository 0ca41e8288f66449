package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusNotFound, "VIEW_NOT_FOUND", "Dashboard view not found")

	assert.Equal(t, "Dashboard view not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "VIEW_NOT_FOUND", err.ErrorCode)
}

func TestViewNotFoundError(t *testing.T) {
	err := ViewNotFoundError("vendor-analysis")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Contains(t, err.Message, "vendor-analysis")
	assert.Equal(t, "vendor-analysis", err.Details)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("top_n", "must be between 3 and 50")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	ve, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "top_n", ve.Field)
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	problem := NewProblemDetails(
		http.StatusServiceUnavailable,
		TypeSnapshotUnavailable,
		"Snapshot Unavailable",
		"The data snapshot has not been loaded",
		"/api/views/executive-overview",
	).WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "/errors/snapshot-unavailable", got["type"])
	assert.Equal(t, "Snapshot Unavailable", got["title"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), got["status"])
	assert.Equal(t, "/api/views/executive-overview", got["instance"])
	assert.Equal(t, "abc-123", got["trace_id"])
}

func TestProblemDetailsOmitsEmptyFields(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotContains(t, got, "detail")
	assert.NotContains(t, got, "instance")
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := NewExportError("write workbook", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EXPORT")
	assert.Contains(t, err.Error(), "write workbook")
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewStorageError("read reports directory", nil).
		WithContext("dir", "/data/reports").
		WithContext("attempt", 1)

	assert.Equal(t, "/data/reports", err.Context["dir"])
	assert.Equal(t, 1, err.Context["attempt"])
	assert.Equal(t, "[STORAGE] read reports directory", err.Error())
}
