package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "file not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]any{"errorMessage": "file not found"}, body)
}

func TestCreatedWritesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]int64{"id": 7})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id": 7}`, rec.Body.String())
}
