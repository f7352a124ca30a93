package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueless/queueless-api/internal/model"
)

func TestListLocationsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.store.locations = []model.Location{
		{ID: "loc-1", City: "Belo Horizonte", State: "MG"},
		{ID: "loc-2", City: "Recife", State: "PE"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []model.Location `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Recife", resp.Data[1].City)
}

func TestListOfficesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})
	env.store.addOffice(model.Office{ID: "office-2", LocationID: "loc-1", Name: "Tax Office"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations/loc-1/offices", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []model.Office `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Data, 2)
}

func TestListOfficesEmptyLocation(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations/loc-empty/offices", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	// Empty is a valid answer, not an error
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []model.Office `json:"data"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Message)
}

func TestListSlotsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Seven slots, lunch hour excluded
	require.Len(t, resp.Data, 7)
	assert.NotContains(t, resp.Data, "13:00-14:00")
	assert.Equal(t, "09:00-10:00", resp.Data[0])
}
