package handlers

import (
	"encoding/json"
	"net/http"

	applog "skylight/internal/log"
	"skylight/internal/weather"
)

// Weather returns the cached weather snapshot. Passing refresh=1 forces a
// synchronous recompute from the current settings before responding.
func Weather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var snapshot weather.Snapshot
	if r.URL.Query().Get("refresh") == "1" {
		snapshot = weatherRefresher.Refresh(r.Context())
	} else {
		snapshot = weatherRefresher.Snapshot()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		applog.Error(r.Context(), "failed to encode weather response", "error", err)
	}
}
