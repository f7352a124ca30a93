package handler

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/cache"
	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/model"
	"github.com/queueless/queueless-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory stand-in for both repositories.
type fakeStore struct {
	locations  []model.Location
	offices    map[string][]model.Office
	officeByID map[string]*model.Office
	baselines  map[string]int   // "office|day|slot"
	slotMeans  map[string][]int // "office|slot"
	signals    []model.LiveSignal
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		offices:    make(map[string][]model.Office),
		officeByID: make(map[string]*model.Office),
		baselines:  make(map[string]int),
		slotMeans:  make(map[string][]int),
	}
}

func (f *fakeStore) addOffice(o model.Office) {
	f.offices[o.LocationID] = append(f.offices[o.LocationID], o)
	office := o
	f.officeByID[o.ID] = &office
}

func (f *fakeStore) ListLocations() ([]model.Location, error) {
	return f.locations, nil
}

func (f *fakeStore) ListOfficesByLocation(locationID string) ([]model.Office, error) {
	return f.offices[locationID], nil
}

func (f *fakeStore) GetOffice(officeID string) (*model.Office, error) {
	return f.officeByID[officeID], nil
}

func (f *fakeStore) GetBaseline(officeID string, dayOfWeek int, timeSlot string) (int, bool, error) {
	minutes, ok := f.baselines[fmt.Sprintf("%s|%d|%s", officeID, dayOfWeek, timeSlot)]
	return minutes, ok, nil
}

func (f *fakeStore) ListSlotBaselines(officeID, timeSlot string) ([]int, error) {
	return f.slotMeans[officeID+"|"+timeSlot], nil
}

func (f *fakeStore) ListOfficeBaselines(officeID string) ([]model.BaselineRecord, error) {
	var records []model.BaselineRecord
	for key, minutes := range f.baselines {
		parts := strings.SplitN(key, "|", 3)
		if parts[0] != officeID {
			continue
		}
		day, _ := strconv.Atoi(parts[1])
		records = append(records, model.BaselineRecord{
			OfficeID:       parts[0],
			DayOfWeek:      day,
			TimeSlot:       parts[2],
			AvgWaitMinutes: minutes,
		})
	}
	return records, nil
}

func (f *fakeStore) ListSince(officeID string, since time.Time) ([]model.LiveSignal, error) {
	var out []model.LiveSignal
	for _, s := range f.signals {
		if s.OfficeID == officeID && !s.RecordedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(signal model.LiveSignal) error {
	f.signals = append(f.signals, signal)
	return nil
}

// testEnv wires a router around the fake store the way main does.
type testEnv struct {
	store    *fakeStore
	router   *gin.Engine
	sessions *service.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()

	c := cache.NewCache(time.Minute)
	t.Cleanup(c.Stop)

	explainer := service.NewExplainer(nil)
	referenceService := service.NewReferenceService(store, nil)
	estimator := service.NewEstimatorService(store, store, explainer, nil, 0)
	sessions := service.NewSessionStore(c, time.Hour)
	checkins := service.NewCheckInService(store, sessions, nil)

	referenceHandler := NewReferenceHandler(referenceService)
	estimateHandler := NewEstimateHandler(estimator, referenceService)
	signalHandler := NewSignalHandler(checkins, referenceService)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Session(sessions))
	{
		api.GET("/locations", referenceHandler.ListLocations)
		api.GET("/locations/:id/offices", referenceHandler.ListOffices)
		api.GET("/slots", referenceHandler.ListSlots)
		api.GET("/offices/:id/estimate", estimateHandler.GetEstimate)
		api.GET("/offices/:id/best-slot", estimateHandler.GetBestSlot)
		api.POST("/offices/:id/signals", signalHandler.CheckIn)
	}

	return &testEnv{store: store, router: r, sessions: sessions}
}
