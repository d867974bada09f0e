package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtsd/internal/calendar"
	"rtsd/internal/countdown"
	"rtsd/internal/models"
	"rtsd/internal/providers"
	"rtsd/internal/services"
	"rtsd/internal/sources"
	"rtsd/internal/structures"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockService struct {
	snapshot     *models.StatusSnapshot
	snapshotErr  error
	milestones   []calendar.Event
	milestoneErr error
	lastPlatform string
	lastTrack    string
}

func (m *mockService) BuildSnapshot(_ context.Context) (*models.StatusSnapshot, error) {
	return m.snapshot, m.snapshotErr
}

func (m *mockService) ChannelMilestones(_ context.Context, platform, track string) ([]calendar.Event, error) {
	m.lastPlatform = platform
	m.lastTrack = track
	return m.milestones, m.milestoneErr
}

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }

// --- helpers ---

func testSnapshot() *models.StatusSnapshot {
	start := time.Date(2025, 10, 14, 16, 0, 0, 0, time.UTC)
	v := "145.0.1"
	sum := "Thunderbird 145 release"
	return &models.StatusSnapshot{
		FetchedAt: time.Now(),
		Channels: map[string]map[string]models.ChannelRecord{
			models.PlatformDesktop: {
				models.TrackRelease: {Version: &v, Milestone: &start, EventSummary: &sum},
			},
			models.PlatformAndroid: {},
		},
		Events: []calendar.Event{{Summary: sum, Start: &start}},
	}
}

func newTestController(svc services.StatusServiceInterface, cache *mockCache) *StatusController {
	calc, err := countdown.NewCalculator(&structures.Config{}, &mockLogger{})
	if err != nil {
		panic(err)
	}
	return NewStatusController(&mockLogger{}, svc, cache, calc)
}

// --- GetStatus tests ---

func TestGetStatus_ServesSnapshot(t *testing.T) {
	svc := &mockService{snapshot: testSnapshot()}
	cache := newMockCache()
	sc := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	sc.GetStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var snap models.StatusSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	rec := snap.Channels[models.PlatformDesktop][models.TrackRelease]
	require.NotNil(t, rec.Version)
	assert.Equal(t, "145.0.1", *rec.Version)
	require.Len(t, snap.Events, 1)

	_, cached := cache.Get(CacheKeyStatus)
	assert.True(t, cached)
}

func TestGetStatus_ServedFromCache(t *testing.T) {
	svc := &mockService{snapshotErr: errors.New("must not be called")}
	cache := newMockCache()
	cache.Set(CacheKeyStatus, []byte(`{"cached":true}`))
	sc := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	sc.GetStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"cached":true}`, rr.Body.String())
}

func TestGetStatus_UpstreamFailureIsBadGateway(t *testing.T) {
	svc := &mockService{snapshotErr: &sources.UpstreamError{Source: "calendar", Err: errors.New("boom")}}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	sc.GetStatus(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGetStatus_OtherFailureIsInternalError(t *testing.T) {
	svc := &mockService{snapshotErr: errors.New("boom")}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	sc.GetStatus(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- GetMilestones tests ---

func TestGetMilestones_DefaultsToDesktopRelease(t *testing.T) {
	svc := &mockService{milestones: testSnapshot().Events}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/milestones", nil)
	rr := httptest.NewRecorder()
	sc.GetMilestones(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.PlatformDesktop, svc.lastPlatform)
	assert.Equal(t, models.TrackRelease, svc.lastTrack)
}

func TestGetMilestones_ExplicitChannel(t *testing.T) {
	svc := &mockService{milestones: nil}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/milestones?platform=android&track=beta", nil)
	rr := httptest.NewRecorder()
	sc.GetMilestones(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.PlatformAndroid, svc.lastPlatform)
	assert.Equal(t, models.TrackBeta, svc.lastTrack)
}

func TestGetMilestones_UnknownChannelIsNotFound(t *testing.T) {
	svc := &mockService{milestoneErr: services.ErrUnknownChannel}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/milestones?platform=ios&track=beta", nil)
	rr := httptest.NewRecorder()
	sc.GetMilestones(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// --- GetCountdown tests ---

func TestGetCountdown_TargetFromSnapshot(t *testing.T) {
	snap := testSnapshot()
	future := time.Now().Add(30 * 24 * time.Hour)
	next := calendar.Event{Summary: "Thunderbird 146 release", Start: &future}
	snap.Events = append(snap.Events, next)

	svc := &mockService{snapshot: snap}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/countdown", nil)
	rr := httptest.NewRecorder()
	sc.GetCountdown(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var target countdown.Target
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &target))
	assert.Equal(t, "146.0", target.Version)
	assert.Equal(t, 29, target.Days)
}

func TestGetCountdown_NoTargetIsNull(t *testing.T) {
	svc := &mockService{snapshot: testSnapshot()}
	sc := newTestController(svc, newMockCache())

	req := httptest.NewRequest(http.MethodGet, "/api/countdown", nil)
	rr := httptest.NewRecorder()
	sc.GetCountdown(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", rr.Body.String())
}
