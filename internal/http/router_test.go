package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	intconfig "ridesboard/internal/config"
	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	h "ridesboard/internal/http/handlers"
	"ridesboard/internal/metrics"
	"ridesboard/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type memRides struct {
	mu    sync.Mutex
	rides []models.Ride
}

func (m *memRides) List(ctx context.Context) ([]models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Ride(nil), m.rides...), nil
}

func (m *memRides) GetByID(ctx context.Context, id string) (models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rides {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Ride{}, domain.NotFoundError{Resource: "ride"}
}

func (m *memRides) Create(ctx context.Context, ride models.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides = append(m.rides, ride)
	return nil
}

func (m *memRides) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rides {
		if r.ID == id {
			m.rides = append(m.rides[:i], m.rides[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "ride"}
}

type memEmail struct{ reqs []models.EmailRideRequest }

func (m *memEmail) List(ctx context.Context) ([]models.EmailRideRequest, error) {
	return m.reqs, nil
}

func (m *memEmail) Create(ctx context.Context, e models.EmailRideRequest) error {
	m.reqs = append(m.reqs, e)
	return nil
}

// 2024-05-01 07:30 UTC, a Wednesday.
var fixedNow = time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *memRides, *metrics.Collector) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("2468"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := func() time.Time { return fixedNow }
	store := &memRides{}
	lines := []models.BusLine{
		{LineID: "409", Operator: "Afikim", Origin: "מעלה עמוס", Destination: "ירושלים", DepartureTimes: []string{"06:00", "08:00", "12:00"}},
	}
	m := metrics.NewCollector(len(lines))
	feed := services.NewFeedService(store, lines, time.Minute, m)

	a := &h.API{
		Rides:    services.RideService{Store: store, Metrics: m, Feed: feed, Location: time.UTC, Now: now},
		Feed:     feed,
		Auth:     services.AuthService{Secret: []byte("test"), AdminPinHash: hash, TTL: time.Hour, Now: now},
		Email:    services.EmailRequestService{Store: &memEmail{}, Now: now},
		Location: time.UTC,
		Now:      now,
	}
	env := intconfig.Env{CORSOrigins: []string{"http://board.local"}}
	return NewRouter(env, a, m), store, m
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/session", "", map[string]string{"name": "tester"})
	if w.Code != http.StatusCreated {
		t.Fatalf("session status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("bad session response: %s", w.Body.String())
	}
	return resp.Token
}

func rideBody(tm string) map[string]any {
	return map[string]any{
		"type":        "offer",
		"driverName":  "Avi",
		"origin":      "מעלה עמוס",
		"destination": "ירושלים",
		"time":        tm,
		"seats":       3,
		"phone":       "0501111111",
		"date":        "2024-05-01",
	}
}

type feedPayload struct {
	Date    string `json:"date"`
	From    string `json:"from"`
	To      string `json:"to"`
	IsToday bool   `json:"isToday"`
	Items   []struct {
		ID           string `json:"id"`
		Type         string `json:"type"`
		SortTime     string `json:"sortTime"`
		MinutesUntil *int   `json:"minutesUntil"`
		MapsURL      string `json:"mapsUrl"`
	} `json:"items"`
}

func getFeed(t *testing.T, r http.Handler, query string) feedPayload {
	t.Helper()
	w := do(r, http.MethodGet, "/api/feed"+query, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("feed status %d: %s", w.Code, w.Body.String())
	}
	var p feedPayload
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	return p
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("unexpected health response %d %v", w.Code, w.Header())
	}
}

func TestFeedDefaultsAndMinutesUntil(t *testing.T) {
	r, _, _ := newTestRouter(t)
	tok := newSession(t, r)
	if w := do(r, http.MethodPost, "/api/rides", tok, rideBody("08:00")); w.Code != http.StatusCreated {
		t.Fatalf("create ride status %d: %s", w.Code, w.Body.String())
	}

	p := getFeed(t, r, "")
	if p.Date != "2024-05-01" || p.From != "07:30" || p.To != "23:59" || !p.IsToday {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	// 06:00 bus is before "now"; ride and bus at 08:00 then the 12:00 bus.
	if len(p.Items) != 3 {
		t.Fatalf("expected 3 items, got %+v", p.Items)
	}
	if p.Items[0].Type != "ride" || p.Items[1].Type != "bus" || p.Items[2].SortTime != "12:00" {
		t.Fatalf("unexpected order: %+v", p.Items)
	}
	if p.Items[0].MinutesUntil == nil || *p.Items[0].MinutesUntil != 30 {
		t.Fatalf("expected minutesUntil 30, got %v", p.Items[0].MinutesUntil)
	}
	if !strings.Contains(p.Items[1].MapsURL, "travelmode=transit") {
		t.Fatalf("bus should link transit directions: %s", p.Items[1].MapsURL)
	}
}

func TestFeedOtherDateHasNoCountdown(t *testing.T) {
	r, _, _ := newTestRouter(t)
	p := getFeed(t, r, "?date=2024-05-02&from=00:00&to=23:59")
	if p.IsToday || len(p.Items) != 3 {
		t.Fatalf("unexpected feed: %+v", p)
	}
	for _, it := range p.Items {
		if it.MinutesUntil != nil {
			t.Fatalf("minutesUntil must be omitted for other dates: %+v", it)
		}
	}
}

func TestFeedRejectsBadQuery(t *testing.T) {
	r, _, _ := newTestRouter(t)
	for _, q := range []string{"?date=01-05-2024", "?from=7:00", "?to=24:00"} {
		if w := do(r, http.MethodGet, "/api/feed"+q, "", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestRideLifecycleAndOwnership(t *testing.T) {
	r, store, _ := newTestRouter(t)

	if w := do(r, http.MethodPost, "/api/rides", "", rideBody("09:00")); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/rides", "not-a-token", rideBody("09:00")); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}

	owner := newSession(t, r)
	w := do(r, http.MethodPost, "/api/rides", owner, rideBody("09:00"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", w.Code, w.Body.String())
	}
	var ride models.Ride
	if err := json.Unmarshal(w.Body.Bytes(), &ride); err != nil || ride.ID == "" {
		t.Fatalf("bad ride response: %s", w.Body.String())
	}

	bad := rideBody("9:00")
	if w := do(r, http.MethodPost, "/api/rides", owner, bad); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad time, got %d", w.Code)
	}

	stranger := newSession(t, r)
	if w := do(r, http.MethodDelete, "/api/rides/"+ride.ID, stranger, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/rides/"+ride.ID, owner, nil); w.Code != http.StatusOK {
		t.Fatalf("owner delete status %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodDelete, "/api/rides/"+ride.ID, owner, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
	if len(store.rides) != 0 {
		t.Fatalf("store should be empty, got %+v", store.rides)
	}
}

func TestAdminCanDeleteAndIngest(t *testing.T) {
	r, _, _ := newTestRouter(t)
	owner := newSession(t, r)
	w := do(r, http.MethodPost, "/api/rides", owner, rideBody("10:00"))
	var ride models.Ride
	_ = json.Unmarshal(w.Body.Bytes(), &ride)

	email := map[string]any{"originalSubject": "טרמפ לתקוע", "senderEmail": "a@example.com", "detectedDestination": "תקוע"}
	if w := do(r, http.MethodPost, "/api/email-requests", owner, email); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin ingest, got %d", w.Code)
	}

	if w := do(r, http.MethodPost, "/api/admin/login", "", map[string]string{"pin": "0000"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d", w.Code)
	}
	w = do(r, http.MethodPost, "/api/admin/login", "", map[string]string{"pin": "2468"})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login status %d: %s", w.Code, w.Body.String())
	}
	var admin struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &admin); err != nil || !admin.IsAdmin {
		t.Fatalf("bad admin response: %s", w.Body.String())
	}

	if w := do(r, http.MethodDelete, "/api/rides/"+ride.ID, admin.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("admin delete status %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/email-requests", admin.Token, email); w.Code != http.StatusCreated {
		t.Fatalf("admin ingest status %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/email-requests?destination="+url.QueryEscape("תקוע"), "", nil)
	var reqs []models.EmailRideRequest
	if err := json.Unmarshal(w.Body.Bytes(), &reqs); err != nil || len(reqs) != 1 {
		t.Fatalf("expected one matching request: %s", w.Body.String())
	}
}

func TestPrintFeed(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/feed/print?from=00:00", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("print status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestLookupsAndMetrics(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/destinations", "", nil)
	var d struct {
		Destinations []string `json:"destinations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil || len(d.Destinations) == 0 || d.Destinations[0] != domain.AllDestinations {
		t.Fatalf("unexpected destinations: %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/bus-lines", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"line":"409"`) {
		t.Fatalf("unexpected bus lines: %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ridesboard_http_requests_total") {
		t.Fatalf("metrics missing request counter: %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/rides", nil)
	req.Header.Set("Origin", "http://board.local")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://board.local" {
		t.Fatalf("missing CORS header: %v", w.Header())
	}
}
