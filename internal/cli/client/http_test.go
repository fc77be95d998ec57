package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_SendsUserIDHeader(t *testing.T) {
	var gotUserID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"status": "ok"}})
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig("u-123", server.URL)
	require.NoError(t, err)

	resp, err := api.Get("/health")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "u-123", gotUserID)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Data))
}

func TestAPIClient_OmitsHeaderWithoutUserID(t *testing.T) {
	var hasHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header["X-User-Id"]
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{}})
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig("", server.URL)
	require.NoError(t, err)

	_, err = api.Post("/api/login", map[string]string{"email": "a@b.c", "password": "x"})
	require.NoError(t, err)
	assert.False(t, hasHeader)
}

func TestAPIClient_PostMarshalsBody(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"id": "t-1"}})
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig("u-123", server.URL)
	require.NoError(t, err)

	resp, err := api.Post("/api/tickets", map[string]string{"description": "Не работает принтер"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Не работает принтер", gotBody["description"])
}

func TestAPIClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "ticket not found"})
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig("u-123", server.URL)
	require.NoError(t, err)

	_, err = api.Get("/api/tickets/missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ticket not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestAPIClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig("u-123", server.URL)
	require.NoError(t, err)

	_, err = api.Get("/api/stats")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "upstream unavailable")
}

func TestNewAPIClientWithCmd_FallsBackToEnv(t *testing.T) {
	t.Setenv(envUserID, "env-user")
	t.Setenv(envAPIURL, "http://env:9999")

	api, err := NewAPIClientWithCmd(nil)
	require.NoError(t, err)
	assert.Equal(t, "env-user", api.userID)
	assert.Equal(t, "http://env:9999", api.baseURL)
}

func TestNewAPIClientWithCmd_MissingUserID(t *testing.T) {
	t.Setenv(envUserID, "")
	t.Setenv(envAPIURL, "")
	overrideConfigPath(t)

	_, err := NewAPIClientWithCmd(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), envUserID)
}

func TestNewAPIClientWithCmd_DefaultURL(t *testing.T) {
	t.Setenv(envUserID, "env-user")
	t.Setenv(envAPIURL, "")
	overrideConfigPath(t)

	api, err := NewAPIClientWithCmd(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, api.baseURL)
}
