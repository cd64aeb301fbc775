package handlers

import (
	"encoding/json"
	"net/http"

	applog "skylight/internal/log"
	"skylight/models"
)

type notesResponse struct {
	Notes string `json:"notes"`
}

// Notes reads and writes the free-form notes pad. The pad is a single string
// persisted under its own store key, independent of the settings record.
func Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notes, _, err := settingsStore.Get(r.Context(), models.SettingKeyNotes)
		if err != nil {
			applog.Error(r.Context(), "failed to load notes", "error", err)
			http.Error(w, "failed to load notes", http.StatusInternalServerError)
			return
		}
		writeNotes(w, r, notes)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			applog.Error(r.Context(), "failed to parse notes form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		notes := r.PostFormValue("notes")
		if err := settingsStore.Set(r.Context(), models.SettingKeyNotes, notes); err != nil {
			applog.Error(r.Context(), "failed to save notes", "error", err)
			http.Error(w, "failed to save notes", http.StatusInternalServerError)
			return
		}
		if !isHTMX(r) && !wantsJSON(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		writeNotes(w, r, notes)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeNotes(w http.ResponseWriter, r *http.Request, notes string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notesResponse{Notes: notes}); err != nil {
		applog.Error(r.Context(), "failed to encode notes response", "error", err)
	}
}
