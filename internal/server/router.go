package server

import (
	"net/http"

	"skylight/internal/handlers"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/logout", handlers.Logout)

	protect := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireAuthentication(h)
	}

	mux.Handle("/app/settings/update", protect(handlers.UpdateSettings))
	mux.Handle("/api/notes", protect(handlers.Notes))
	mux.Handle("/api/weather", protect(handlers.Weather))
	mux.Handle("/api/location", protect(handlers.UpdateLocation))
	mux.Handle("/api/chat", protect(handlers.ChatSubmit))
	mux.Handle("/api/chat/state", protect(handlers.ChatState))
	mux.Handle("/api/search", protect(handlers.SearchSubmit))
	mux.Handle("/api/search/state", protect(handlers.SearchState))
	mux.Handle("/api/wallpaper", protect(handlers.GenerateWallpaper))

	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	mux.Handle("/", protect(handlers.Home))

	return mux
}
