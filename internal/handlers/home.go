package handlers

import (
	"net/http"
	"time"

	applog "skylight/internal/log"
	"skylight/internal/views/pages"
	"skylight/models"
)

// Home renders the dashboard page.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	notes, _, err := settingsStore.Get(r.Context(), models.SettingKeyNotes)
	if err != nil {
		applog.Error(r.Context(), "failed to load notes for dashboard", "error", err)
	}

	data := pages.DashboardData{
		Settings:  settingsManager.Record(),
		Weather:   weatherRefresher.Snapshot(),
		Notes:     notes,
		Chat:      chatWidget.State(),
		Search:    searchWidget.State(),
		Wallpaper: wallpaperService.Status(),
		Now:       time.Now(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Dashboard(data).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
