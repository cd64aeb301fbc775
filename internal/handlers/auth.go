package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	applog "skylight/internal/log"
	"skylight/internal/views/pages"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionLoginMessageKey  = "auth:message"
)

// AuthEnabled reports whether the passcode gate is active. Without a
// configured passcode the dashboard is open, matching its single-local-user
// scope.
func AuthEnabled() bool {
	return len(passcodeHash) > 0
}

// ActiveSession returns true when the current request carries an
// authenticated session.
func ActiveSession(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAuthenticatedKey)
}

// RequireAuthentication gates a resource behind the passcode session. It is a
// pass-through when no passcode is configured.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AuthEnabled() && !ActiveSession(r) {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login renders the passcode form and processes unlock submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if !AuthEnabled() || ActiveSession(r) {
			redirectToHome(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, message)
	case http.MethodPost:
		if !AuthEnabled() {
			redirectToHome(w, r)
			return
		}
		if sessionManager == nil {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		passcode := r.PostFormValue("passcode")
		if err := bcrypt.CompareHashAndPassword(passcodeHash, []byte(passcode)); err != nil {
			applog.Debug(r.Context(), "passcode rejected")
			renderLogin(w, r, "Incorrect passcode. Please try again.")
			return
		}

		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
			http.Error(w, "unable to establish session", http.StatusInternalServerError)
			return
		}
		sessionManager.Put(r.Context(), sessionAuthenticatedKey, true)
		redirectToHome(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Logout destroys the current session and returns to the passcode form.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}

	redirectToLogin(w, r)
}

func renderLogin(w http.ResponseWriter, r *http.Request, message string) {
	if err := pages.Login(message).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render login page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func redirectToHome(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
