package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"skylight/internal/dashboard"
	"skylight/internal/db"
	"skylight/internal/settings"
	"skylight/internal/store"
	"skylight/internal/weather"
)

// configureTest wires the handler package against an in-memory database and
// stubbed provider calls. The previous wiring is restored on cleanup.
func configureTest(t *testing.T, name string) *settings.Manager {
	t.Helper()

	gdb, err := db.OpenMemory(name)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	st := store.New(gdb)
	manager := settings.NewManager(context.Background(), st)

	refresher := weather.NewRefresher(weather.NewClient(weather.Config{}), manager)
	refresher.SetSleep(func(time.Duration) {})

	complete := func(ctx context.Context, apiKey, model, prompt string) (string, error) {
		return "stub response", nil
	}
	generate := func(ctx context.Context, apiKey, prompt string) (string, error) {
		return "https://img.example/generated.png", nil
	}

	previous := Dependencies{
		SessionManager: sessionManager,
		Settings:       settingsManager,
		Store:          settingsStore,
		Chat:           chatWidget,
		Search:         searchWidget,
		Wallpaper:      wallpaperService,
		Weather:        weatherRefresher,
		PasscodeHash:   passcodeHash,
	}
	Configure(Dependencies{
		SessionManager: scs.New(),
		Settings:       manager,
		Store:          st,
		Chat:           dashboard.NewChatWidget(manager, complete),
		Search:         dashboard.NewSearchWidget(manager, complete),
		Wallpaper:      dashboard.NewWallpaper(manager, generate),
		Weather:        refresher,
	})
	t.Cleanup(func() {
		Configure(previous)
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return manager
}

func postForm(t *testing.T, handler http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status ok, got %q", resp.Status)
	}
	if resp.Time.IsZero() {
		t.Fatal("expected response time to be populated")
	}
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestHomeRendersDashboard(t *testing.T) {
	manager := configureTest(t, "handlers_home")

	if _, err := manager.Update(context.Background(), func(r *settings.Record) {
		r.UserName = "Ada"
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ada") {
		t.Error("dashboard missing user name")
	}
	if !strings.Contains(body, "(Mock)") {
		t.Error("dashboard missing mock weather snapshot")
	}
}

func TestHomeRejectsUnknownPaths(t *testing.T) {
	configureTest(t, "handlers_home_404")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateSettingsAppliesOnlySubmittedFields(t *testing.T) {
	manager := configureTest(t, "handlers_settings_partial")

	w := postForm(t, UpdateSettings, "/app/settings/update", url.Values{
		"userName": {"  Grace  "},
		"unit":     {settings.UnitCelsius},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	record := manager.Record()
	if record.UserName != "Grace" {
		t.Errorf("userName = %q, want %q", record.UserName, "Grace")
	}
	if record.Unit != settings.UnitCelsius {
		t.Errorf("unit = %q, want %q", record.Unit, settings.UnitCelsius)
	}
	if record.Location != settings.Defaults().Location {
		t.Errorf("location changed by an unrelated submission: %q", record.Location)
	}
}

func TestUpdateSettingsReturnsJSONWhenAsked(t *testing.T) {
	configureTest(t, "handlers_settings_json")

	form := url.Values{"is24Hour": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/app/settings/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	UpdateSettings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var record settings.Record
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !record.Is24Hour {
		t.Error("expected is24Hour to be set")
	}
}

func TestNotesRoundTrip(t *testing.T) {
	configureTest(t, "handlers_notes")

	w := postForm(t, Notes, "/api/notes", url.Values{"notes": {"pick up milk"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after save, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	get := httptest.NewRecorder()
	Notes(get, req)

	if get.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", get.Code)
	}
	var resp notesResponse
	if err := json.Unmarshal(get.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Notes != "pick up milk" {
		t.Fatalf("notes = %q, want %q", resp.Notes, "pick up milk")
	}
}

func TestWeatherReturnsMockWithoutKey(t *testing.T) {
	configureTest(t, "handlers_weather_mock")

	req := httptest.NewRequest(http.MethodGet, "/api/weather?refresh=1", nil)
	w := httptest.NewRecorder()
	Weather(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var snapshot weather.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasSuffix(snapshot.Location, "(Mock)") {
		t.Fatalf("expected mock snapshot, got %+v", snapshot)
	}
}

func TestUpdateLocationValidatesPayload(t *testing.T) {
	manager := configureTest(t, "handlers_location")

	bad := httptest.NewRequest(http.MethodPost, "/api/location", strings.NewReader(`not json`))
	w := httptest.NewRecorder()
	UpdateLocation(w, bad)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", w.Code)
	}

	outOfRange := httptest.NewRequest(http.MethodPost, "/api/location", strings.NewReader(`{"lat":120,"lon":0}`))
	w = httptest.NewRecorder()
	UpdateLocation(w, outOfRange)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range coordinates, got %d", w.Code)
	}

	good := httptest.NewRequest(http.MethodPost, "/api/location", strings.NewReader(`{"lat":51.5,"lon":-0.12}`))
	w = httptest.NewRecorder()
	UpdateLocation(w, good)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	lat, lon, ok := manager.LocationFix()
	if !ok || lat != 51.5 || lon != -0.12 {
		t.Fatalf("location fix not recorded: %v %v %v", lat, lon, ok)
	}
}

func TestChatSubmitWithoutKeyReturnsGuardMessage(t *testing.T) {
	configureTest(t, "handlers_chat_nokey")

	w := postForm(t, ChatSubmit, "/api/chat", url.Values{"prompt": {"hello"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var state dashboard.State
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Response != dashboard.NoKeyMessage {
		t.Fatalf("response = %q, want %q", state.Response, dashboard.NoKeyMessage)
	}
	if state.Busy {
		t.Error("widget must not report busy on the guard path")
	}
}

func TestSearchSubmitReturnsCompletion(t *testing.T) {
	manager := configureTest(t, "handlers_search_ok")

	if _, err := manager.Update(context.Background(), func(r *settings.Record) {
		r.PollinationsAPIKey = "key"
	}); err != nil {
		t.Fatalf("failed to seed key: %v", err)
	}

	w := postForm(t, SearchSubmit, "/api/search", url.Values{"q": {"tides"}})
	var state dashboard.State
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Response != "stub response" {
		t.Fatalf("response = %q, want stub response", state.Response)
	}
	if state.Busy {
		t.Error("completed submission must not report busy")
	}

	stateReq := httptest.NewRequest(http.MethodGet, "/api/search/state", nil)
	get := httptest.NewRecorder()
	SearchState(get, stateReq)
	if err := json.Unmarshal(get.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode state response: %v", err)
	}
	if state.Response != "stub response" {
		t.Fatalf("persisted state = %q, want stub response", state.Response)
	}
}

func TestGenerateWallpaperEmptyPrompt(t *testing.T) {
	configureTest(t, "handlers_wallpaper_empty")

	w := postForm(t, GenerateWallpaper, "/api/wallpaper", url.Values{"prompt": {"   "}})
	var status dashboard.WallpaperStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.Message != dashboard.WallpaperEmptyPromptMessage {
		t.Fatalf("message = %q, want %q", status.Message, dashboard.WallpaperEmptyPromptMessage)
	}
}

func TestGenerateWallpaperCommitsURL(t *testing.T) {
	manager := configureTest(t, "handlers_wallpaper_ok")

	if _, err := manager.Update(context.Background(), func(r *settings.Record) {
		r.PollinationsAPIKey = "key"
	}); err != nil {
		t.Fatalf("failed to seed key: %v", err)
	}

	w := postForm(t, GenerateWallpaper, "/api/wallpaper", url.Values{"prompt": {"aurora over mountains"}})
	var status dashboard.WallpaperStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.Wallpaper != "https://img.example/generated.png" {
		t.Fatalf("wallpaper = %q, want generated URL", status.Wallpaper)
	}
	if status.Message != dashboard.WallpaperSuccessMessage {
		t.Fatalf("message = %q, want %q", status.Message, dashboard.WallpaperSuccessMessage)
	}
}
