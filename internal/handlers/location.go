package handlers

import (
	"encoding/json"
	"net/http"

	applog "skylight/internal/log"
)

type locationFix struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UpdateLocation records the browser-reported geolocation fix. The fix lives
// in memory only and feeds coordinate-based weather lookups when automatic
// location is enabled. A fresh fix schedules a background refresh.
func UpdateLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var fix locationFix
	if err := json.NewDecoder(r.Body).Decode(&fix); err != nil {
		applog.Debug(r.Context(), "failed to decode location fix", "error", err)
		http.Error(w, "invalid location payload", http.StatusBadRequest)
		return
	}
	if fix.Lat < -90 || fix.Lat > 90 || fix.Lon < -180 || fix.Lon > 180 {
		applog.Debug(r.Context(), "location fix out of range", "lat", fix.Lat, "lon", fix.Lon)
		http.Error(w, "coordinates out of range", http.StatusBadRequest)
		return
	}

	settingsManager.SetLocationFix(fix.Lat, fix.Lon)
	applog.Debug(r.Context(), "location fix recorded", "lat", fix.Lat, "lon", fix.Lon)

	if settingsManager.Record().IsAutoLocation {
		weatherRefresher.RefreshAsync()
	}

	w.WriteHeader(http.StatusNoContent)
}
