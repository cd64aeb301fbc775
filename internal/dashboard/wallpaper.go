package dashboard

import (
	"context"
	"strings"
	"sync"

	applog "skylight/internal/log"
	"skylight/internal/settings"
)

// Messages surfaced by the wallpaper generator.
const (
	WallpaperEmptyPromptMessage = "Please describe the wallpaper you want to generate."
	WallpaperWorkingMessage     = "Generating wallpaper... this may take up to a minute."
	WallpaperSuccessMessage     = "Wallpaper updated."
	WallpaperFailureMessage     = "Wallpaper generation failed. Reverted to the default wallpaper."
)

// wallpaperSuffix is appended to every user prompt before it is sent to the
// image endpoint.
const wallpaperSuffix = ", digital art, highly detailed, cinematic lighting, 16:9 wallpaper"

// GenerateFunc matches the image-generation call of the ai client.
type GenerateFunc func(ctx context.Context, apiKey, prompt string) (string, error)

// WallpaperStatus is the transient display state of the wallpaper generator.
type WallpaperStatus struct {
	Busy      bool   `json:"busy"`
	Message   string `json:"message"`
	Wallpaper string `json:"wallpaper"`
}

// Wallpaper drives wallpaper generation: precondition checks, a single
// fire-once call, and commit-or-revert of the wallpaper setting.
type Wallpaper struct {
	manager  *settings.Manager
	generate GenerateFunc

	mu      sync.Mutex
	busy    bool
	message string
}

// NewWallpaper wires the generator to the settings controller.
func NewWallpaper(manager *settings.Manager, generate GenerateFunc) *Wallpaper {
	return &Wallpaper{manager: manager, generate: generate}
}

// Status returns the generator's current transient state.
func (s *Wallpaper) Status() WallpaperStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WallpaperStatus{
		Busy:      s.busy,
		Message:   s.message,
		Wallpaper: s.manager.Record().Wallpaper,
	}
}

// Generate runs one wallpaper generation. Preconditions are checked in order:
// a non-empty prompt, then a configured credential; either failure produces a
// message and no network call. A generation already in flight is left alone.
// On success the returned URL is committed to the wallpaper setting; on any
// failure the wallpaper reverts to the first preset. The busy flag is cleared
// on both paths.
func (s *Wallpaper) Generate(ctx context.Context, prompt string) WallpaperStatus {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return s.fail(ctx, WallpaperEmptyPromptMessage)
	}

	apiKey := s.manager.Record().PollinationsAPIKey
	if apiKey == "" {
		return s.fail(ctx, NoKeyMessage)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return s.Status()
	}
	s.busy = true
	s.message = WallpaperWorkingMessage
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	url, err := s.generate(ctx, apiKey, prompt+wallpaperSuffix)
	if err != nil {
		applog.Warn(ctx, "wallpaper generation failed", "error", err)
		if _, revertErr := s.manager.Update(ctx, func(r *settings.Record) {
			r.Wallpaper = settings.DefaultWallpaper()
		}); revertErr != nil {
			applog.Error(ctx, "failed to persist wallpaper revert", "error", revertErr)
		}
		return s.finish(WallpaperFailureMessage)
	}

	if _, err := s.manager.Update(ctx, func(r *settings.Record) {
		r.Wallpaper = url
	}); err != nil {
		applog.Error(ctx, "failed to persist generated wallpaper", "error", err)
	}
	applog.Info(ctx, "wallpaper updated", "url", url)
	return s.finish(WallpaperSuccessMessage)
}

func (s *Wallpaper) fail(ctx context.Context, message string) WallpaperStatus {
	applog.Debug(ctx, "wallpaper generation rejected", "reason", message)
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	return s.Status()
}

func (s *Wallpaper) finish(message string) WallpaperStatus {
	s.mu.Lock()
	s.message = message
	s.busy = false
	s.mu.Unlock()
	return s.Status()
}
