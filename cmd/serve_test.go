package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_HealthEndpoint(t *testing.T) {
	withTestConfig(t)
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_TradesRejectsBadYear(t *testing.T) {
	withTestConfig(t)
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/trades?year=abc&team=TeamAlice", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "year must be an integer")
}

func TestRouter_TradesRejectsUnknownTeam(t *testing.T) {
	withTestConfig(t)
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/trades?year=2023&team=Nobody", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown team")
}

func TestRouter_TradesRejectsOutOfRangeYear(t *testing.T) {
	withTestConfig(t)
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/trades?year=1999&team=TeamAlice", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "outside configured seasons")
}
