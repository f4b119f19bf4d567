package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)

	RespondWithJSON(rr, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestRespondWithErrorCarriesTraceID(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest("GET", "/x", nil)
	ctx := SetTraceID(req.Context())
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	RespondWithError(rr, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Task not found", body.Error)
	assert.Equal(t, GetTraceID(ctx), body.TraceID)
	assert.Len(t, body.TraceID, 32)
}

func TestRespondWithErrorAndLogHidesInternalDetail(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest("GET", "/x", nil)
	rr := httptest.NewRecorder()

	internal := errors.New("pq: password authentication failed for user \"admin\"")
	RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "Failed to list tasks", internal)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Failed to list tasks", body.Error)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = SetTraceID(ctx)
	first := GetTraceID(ctx)
	assert.Len(t, first, 32)

	// A second SetTraceID replaces the ID rather than reusing it.
	second := GetTraceID(SetTraceID(ctx))
	assert.NotEqual(t, first, second)
}
