package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, map[string]int{"modifiedCount": 2}, http.StatusCreated)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, len(rec.Body.Bytes()), n)
	assert.JSONEq(t, `{"modifiedCount":2}`, rec.Body.String())
}

func TestWriteJSON_InvalidData(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, make(chan int), http.StatusOK)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, "Bin not found", http.StatusNotFound)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Bin not found", body["message"])
}
