package handlers

import (
	"encoding/json"
	"net/http"

	"skylight/internal/dashboard"
	applog "skylight/internal/log"
)

// ChatSubmit runs one prompt through the chat widget and returns the
// resulting widget state.
func ChatSubmit(w http.ResponseWriter, r *http.Request) {
	submitWidget(w, r, chatWidget, "prompt")
}

// SearchSubmit runs one query through the AI search widget.
func SearchSubmit(w http.ResponseWriter, r *http.Request) {
	submitWidget(w, r, searchWidget, "q")
}

// ChatState returns the chat widget's current display state.
func ChatState(w http.ResponseWriter, r *http.Request) {
	widgetState(w, r, chatWidget)
}

// SearchState returns the search widget's current display state.
func SearchState(w http.ResponseWriter, r *http.Request) {
	widgetState(w, r, searchWidget)
}

func submitWidget(w http.ResponseWriter, r *http.Request, widget *dashboard.Widget, field string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse widget form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	state := widget.Submit(r.Context(), r.PostFormValue(field))
	writeWidgetState(w, r, state)
}

func widgetState(w http.ResponseWriter, r *http.Request, widget *dashboard.Widget) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeWidgetState(w, r, widget.State())
}

func writeWidgetState(w http.ResponseWriter, r *http.Request, state dashboard.State) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		applog.Error(r.Context(), "failed to encode widget state", "error", err)
	}
}
