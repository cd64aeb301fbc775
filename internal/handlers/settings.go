package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "skylight/internal/log"
	"skylight/internal/settings"
)

// UpdateSettings applies a form submission to the settings record. Only the
// fields present in the form are touched, so individual controls can post
// independently. The mutation is persisted write-through and triggers a
// weather refresh when a qualifying field changed.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse settings form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	record, err := settingsManager.Update(r.Context(), func(rec *settings.Record) {
		applyField(r, "userName", &rec.UserName)
		applyField(r, "userEmail", &rec.UserEmail)
		applyField(r, "apiKey", &rec.APIKey)
		applyField(r, "pollinationsApiKey", &rec.PollinationsAPIKey)
		applyField(r, "profilePictureUrl", &rec.ProfilePictureURL)
		applyField(r, "location", &rec.Location)
		applyField(r, "unit", &rec.Unit)
		applyField(r, "wallpaper", &rec.Wallpaper)
		applyField(r, "aiSearchModel", &rec.AISearchModel)
		applyBool(r, "isAutoLocation", &rec.IsAutoLocation)
		applyBool(r, "is24Hour", &rec.Is24Hour)
	})
	if err != nil {
		applog.Error(r.Context(), "failed to persist settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	applog.Info(r.Context(), "settings updated")

	if !isHTMX(r) && !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		applog.Error(r.Context(), "failed to encode settings response", "error", err)
	}
}

func applyField(r *http.Request, name string, target *string) {
	if !r.PostForm.Has(name) {
		return
	}
	*target = strings.TrimSpace(r.PostFormValue(name))
}

func applyBool(r *http.Request, name string, target *bool) {
	if !r.PostForm.Has(name) {
		return
	}
	switch strings.ToLower(r.PostFormValue(name)) {
	case "on", "true", "1":
		*target = true
	default:
		*target = false
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
