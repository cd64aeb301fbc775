package handlers

import (
	"encoding/json"
	"net/http"

	applog "skylight/internal/log"
)

// GenerateWallpaper runs one wallpaper generation from the submitted prompt
// and returns the generator status, including the now-active wallpaper URL.
func GenerateWallpaper(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse wallpaper form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	status := wallpaperService.Generate(r.Context(), r.PostFormValue("prompt"))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		applog.Error(r.Context(), "failed to encode wallpaper status", "error", err)
	}
}
