// Package dashboard holds the widget orchestrators that sit between the HTTP
// surface and the external providers. All provider failures are converted to
// user-visible strings here; nothing escapes to the caller as an error.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"skylight/internal/apperr"
	applog "skylight/internal/log"
	"skylight/internal/settings"
)

// NoKeyMessage is shown verbatim when an AI widget is used without a
// configured Pollinations key. The call is short-circuited before any network
// I/O and the busy flag never engages.
const NoKeyMessage = "Error: Pollinations API Key not set in settings."

// State is the transient, non-persisted display state of one AI widget.
type State struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Busy     bool   `json:"busy"`
}

// CompleteFunc matches the chat-completion call of the ai client.
type CompleteFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

// Widget orchestrates one AI text widget. The chat and search widgets are two
// independent instances with their own busy flags and their own model ids.
type Widget struct {
	name        string
	placeholder string
	manager     *settings.Manager
	model       func(settings.Record) string
	complete    CompleteFunc

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewChatWidget builds the general-purpose chat widget.
func NewChatWidget(manager *settings.Manager, complete CompleteFunc) *Widget {
	return &Widget{
		name:        "chat",
		placeholder: "Thinking...",
		manager:     manager,
		model:       func(settings.Record) string { return settings.ChatModel },
		complete:    complete,
	}
}

// NewSearchWidget builds the AI search widget, whose model id follows the
// aiSearchModel setting.
func NewSearchWidget(manager *settings.Manager, complete CompleteFunc) *Widget {
	return &Widget{
		name:        "search",
		placeholder: "Searching...",
		manager:     manager,
		model:       func(r settings.Record) string { return r.AISearchModel },
		complete:    complete,
	}
}

// State returns the widget's current transient state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit runs one prompt through the widget. Blank prompts are a no-op.
// Submissions are sequence-tagged: a submission that has been overtaken by a
// newer one completes without touching the display state, so responses can
// never appear out of order. The busy flag is released on every exit path.
func (w *Widget) Submit(ctx context.Context, prompt string) (out State) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return w.State()
	}

	record := w.manager.Record()
	apiKey := record.PollinationsAPIKey

	w.mu.Lock()
	if apiKey == "" {
		w.state = State{Response: NoKeyMessage}
		out = w.state
		w.mu.Unlock()
		applog.Debug(ctx, "ai submit blocked, no key configured", "widget", w.name)
		return out
	}

	w.seq++
	seq := w.seq
	w.state = State{Response: w.placeholder, Busy: true}
	w.mu.Unlock()

	applog.Debug(ctx, "ai submit dispatched", "widget", w.name, "seq", seq)

	var response string
	defer func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if seq == w.seq {
			w.state.Response = response
			w.state.Busy = false
		}
		out = w.state
	}()

	text, err := w.complete(ctx, apiKey, w.model(record), prompt)
	if err != nil {
		applog.Warn(ctx, "ai call failed", "widget", w.name, "error", err)
		response = userMessage(err)
		return
	}
	response = text
	return
}

// userMessage converts a classified call error into the string shown in the
// widget's response field.
func userMessage(err error) string {
	var appErr *apperr.Error
	switch apperr.CodeOf(err) {
	case apperr.CodeConfigurationMissing:
		return NoKeyMessage
	case apperr.CodeAuthenticationFailure:
		return "Error: authentication failed. Check your Pollinations API key."
	case apperr.CodeRateLimited:
		return "Error: rate limited. Please try again in a moment."
	case apperr.CodeAPIFailure:
		if errors.As(err, &appErr) && appErr.Status > 0 {
			return fmt.Sprintf("Error: the AI service returned status %d.", appErr.Status)
		}
		return "Error: could not reach the AI service."
	default:
		return "Error: something went wrong. Please try again."
	}
}
