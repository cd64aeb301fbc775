// Package handlers exposes the dashboard's HTTP surface.
package handlers

import (
	"github.com/alexedwards/scs/v2"

	"skylight/internal/dashboard"
	"skylight/internal/settings"
	"skylight/internal/store"
	"skylight/internal/weather"
)

var (
	sessionManager   *scs.SessionManager
	settingsManager  *settings.Manager
	settingsStore    *store.Store
	chatWidget       *dashboard.Widget
	searchWidget     *dashboard.Widget
	wallpaperService *dashboard.Wallpaper
	weatherRefresher *weather.Refresher
	passcodeHash     []byte
)

// Dependencies carries everything the HTTP handlers need.
type Dependencies struct {
	SessionManager *scs.SessionManager
	Settings       *settings.Manager
	Store          *store.Store
	Chat           *dashboard.Widget
	Search         *dashboard.Widget
	Wallpaper      *dashboard.Wallpaper
	Weather        *weather.Refresher

	// PasscodeHash is the bcrypt hash of the dashboard passcode. Empty
	// disables the login gate entirely.
	PasscodeHash []byte
}

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.SessionManager
	settingsManager = deps.Settings
	settingsStore = deps.Store
	chatWidget = deps.Chat
	searchWidget = deps.Search
	wallpaperService = deps.Wallpaper
	weatherRefresher = deps.Weather
	passcodeHash = deps.PasscodeHash
}
