// Package shortcuts holds the declarative app-shortcut grid shown on the
// dashboard. The list is fixed; there is no persistence behind it.
package shortcuts

// Shortcut is one tile in the shortcut grid.
type Shortcut struct {
	Name string
	URL  string
	Icon string
}

var catalogue = []Shortcut{
	{Name: "Gmail", URL: "https://mail.google.com", Icon: "mail"},
	{Name: "Calendar", URL: "https://calendar.google.com", Icon: "calendar"},
	{Name: "YouTube", URL: "https://youtube.com", Icon: "play"},
	{Name: "GitHub", URL: "https://github.com", Icon: "code"},
	{Name: "Reddit", URL: "https://reddit.com", Icon: "chat"},
	{Name: "Maps", URL: "https://maps.google.com", Icon: "map"},
	{Name: "Drive", URL: "https://drive.google.com", Icon: "folder"},
	{Name: "Spotify", URL: "https://open.spotify.com", Icon: "music"},
}

// All returns the shortcut catalogue in display order.
func All() []Shortcut {
	result := make([]Shortcut, len(catalogue))
	copy(result, catalogue)
	return result
}
