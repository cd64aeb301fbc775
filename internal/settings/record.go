// Package settings owns the dashboard's single mutable configuration record.
package settings

import (
	"net/url"
	"strings"
)

// Record is the flat settings document persisted under the "settings" store
// key. Field names mirror the JSON the dashboard client reads and writes.
type Record struct {
	UserName           string `json:"userName"`
	UserEmail          string `json:"userEmail"`
	APIKey             string `json:"apiKey"`
	PollinationsAPIKey string `json:"pollinationsApiKey"`
	ProfilePictureURL  string `json:"profilePictureUrl"`
	Location           string `json:"location"`
	IsAutoLocation     bool   `json:"isAutoLocation"`
	Is24Hour           bool   `json:"is24Hour"`
	Unit               string `json:"unit"`
	Wallpaper          string `json:"wallpaper"`
	AISearchModel      string `json:"aiSearchModel"`
}

// Temperature units.
const (
	UnitCelsius    = "C"
	UnitFahrenheit = "F"
)

// WallpaperPresets lists the built-in wallpapers. The first entry is the
// default and the revert target after a failed generation.
var WallpaperPresets = []string{
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1920&q=80",
	"https://images.unsplash.com/photo-1519681393784-d120267933ba?w=1920&q=80",
	"https://images.unsplash.com/photo-1470770841072-f978cf4d019e?w=1920&q=80",
	"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1920&q=80",
}

// DefaultWallpaper returns the first preset.
func DefaultWallpaper() string {
	return WallpaperPresets[0]
}

// SearchModels lists the model identifiers selectable for the AI search
// widget. The first entry is the default.
var SearchModels = []string{"searchgpt", "openai", "mistral"}

// ChatModel is the fixed model identifier used by the general chat widget.
const ChatModel = "openai"

// Defaults returns the hard-coded default record used when the store holds no
// settings or holds something unparseable.
func Defaults() Record {
	return Record{
		UserName:      "Explorer",
		Location:      "New York",
		Unit:          UnitFahrenheit,
		Wallpaper:     DefaultWallpaper(),
		AISearchModel: SearchModels[0],
	}
}

// Normalize clamps enum-like fields back onto their allowed values and keeps
// the invariants the rest of the dashboard relies on (wallpaper never empty,
// userName never empty).
func (r *Record) Normalize() {
	if strings.TrimSpace(r.UserName) == "" {
		r.UserName = Defaults().UserName
	}
	switch r.Unit {
	case UnitCelsius, UnitFahrenheit:
	default:
		r.Unit = UnitFahrenheit
	}
	if strings.TrimSpace(r.Wallpaper) == "" {
		r.Wallpaper = DefaultWallpaper()
	}
	if !validSearchModel(r.AISearchModel) {
		r.AISearchModel = SearchModels[0]
	}
}

func validSearchModel(model string) bool {
	for _, known := range SearchModels {
		if model == known {
			return true
		}
	}
	return false
}

// AvatarURL returns the configured profile picture, or an avatar derived from
// the user's name when none is set.
func (r Record) AvatarURL() string {
	if strings.TrimSpace(r.ProfilePictureURL) != "" {
		return r.ProfilePictureURL
	}
	name := strings.TrimSpace(r.UserName)
	if name == "" {
		name = Defaults().UserName
	}
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
}
