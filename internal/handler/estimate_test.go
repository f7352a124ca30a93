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

func TestGetEstimate(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})
	env.store.baselines["office-1|0|10:00-11:00"] = 100

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/estimate?day=0&slot=10:00-11:00", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    model.EstimateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 100, resp.Data.Baseline)
	assert.Equal(t, model.ConditionNormal, resp.Data.Condition)
	assert.Equal(t, 90, resp.Data.LowMinutes)
	assert.Equal(t, 110, resp.Data.HighMinutes)
	assert.Equal(t, model.ConfidenceLow, resp.Data.Confidence)
	assert.NotEmpty(t, resp.Data.Explanation)
}

func TestGetEstimateNoBaseline(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/estimate?day=0&slot=10:00-11:00", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEstimateUnknownOffice(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/ghost/estimate?day=0&slot=10:00-11:00", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEstimateInvalidDay(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})

	for _, day := range []string{"7", "-1", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/estimate?day="+day+"&slot=10:00-11:00", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "day=%s", day)
	}
}

func TestGetEstimateInvalidSlot(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/estimate?day=0&slot=25:00-26:00", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBestSlot(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})
	env.store.baselines["office-1|0|09:00-10:00"] = 30
	env.store.baselines["office-1|0|10:00-11:00"] = 25
	env.store.baselines["office-1|0|11:00-12:00"] = 25

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/best-slot?day=0", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    model.BestSlot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Earliest of the tied slots wins
	assert.Equal(t, "10:00-11:00", resp.Data.TimeSlot)
	assert.Equal(t, 25, resp.Data.BaselineMinutes)
}

func TestGetBestSlotNoData(t *testing.T) {
	env := newTestEnv(t)
	env.store.addOffice(model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offices/office-1/best-slot?day=0", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
