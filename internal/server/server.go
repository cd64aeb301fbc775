// Package server assembles the dashboard's HTTP stack.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skylight/internal/ai"
	"skylight/internal/config"
	"skylight/internal/dashboard"
	"skylight/internal/handlers"
	applog "skylight/internal/log"
	"skylight/internal/settings"
	"skylight/internal/store"
	"skylight/internal/weather"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr      string
	Session   config.SessionConfig
	Database  *gorm.DB
	Passcode  string
	Providers config.ProvidersConfig
}

// Server wraps an http.Server and the dashboard services behind it.
type Server struct {
	config     Config
	httpServer *http.Server
	refresher  *weather.Refresher
}

// New builds a new Server using the provided configuration: it constructs the
// settings controller, the provider clients, and the widget orchestrators, and
// wires them into the handler package.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()
	applog.Debug(ctx, "initializing server", "addr", cfg.Addr)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		sessionCfg.CookieName = "skylight_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	var passcodeHash []byte
	if cfg.Passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Passcode), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passcodeHash = hash
		applog.Info(ctx, "passcode gate enabled")
	}

	st := store.New(cfg.Database)
	manager := settings.NewManager(ctx, st)

	aiClient := ai.NewClient(ai.Config{
		ChatURL:  cfg.Providers.ChatURL,
		ImageURL: cfg.Providers.ImageURL,
		Timeout:  cfg.Providers.RequestTimeout,
	})
	weatherClient := weather.NewClient(weather.Config{
		BaseURL: cfg.Providers.WeatherURL,
		Timeout: cfg.Providers.RequestTimeout,
	})

	refresher := weather.NewRefresher(weatherClient, manager)
	manager.OnWeatherChange(refresher.RefreshAsync)

	handlers.Configure(handlers.Dependencies{
		SessionManager: sessionManager,
		Settings:       manager,
		Store:          st,
		Chat:           dashboard.NewChatWidget(manager, aiClient.Complete),
		Search:         dashboard.NewSearchWidget(manager, aiClient.Complete),
		Wallpaper:      dashboard.NewWallpaper(manager, aiClient.GenerateImage),
		Weather:        refresher,
		PasscodeHash:   passcodeHash,
	})

	handler := sessionManager.LoadAndSave(withRequestID(withRequestLogging(newRouter())))

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		refresher: refresher,
	}, nil
}

// Start warms the weather cache and begins serving HTTP traffic.
func (s *Server) Start() error {
	s.refresher.RefreshAsync()
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
