// Package pages renders the dashboard's server-side views.
package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"skylight/internal/dashboard"
	"skylight/internal/settings"
	"skylight/internal/views/layout"
	"skylight/internal/views/shortcuts"
	"skylight/internal/weather"
)

// DashboardData gathers everything the start page renders.
type DashboardData struct {
	Settings  settings.Record
	Weather   weather.Snapshot
	Notes     string
	Chat      dashboard.State
	Search    dashboard.State
	Wallpaper dashboard.WallpaperStatus
	Now       time.Time
}

// Dashboard renders the full start page.
func Dashboard(data DashboardData) templ.Component {
	return layout.Base("Skylight", data.Settings.Wallpaper, dashboardBody(data))
}

func dashboardBody(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rec := data.Settings

		if _, err := fmt.Fprintf(w,
			`<header class="masthead">`+
				`<img class="avatar" src="%s" alt="avatar">`+
				`<div class="identity"><p class="greeting">%s, %s</p>`+
				`<p class="clock" data-format="%s">%s</p>`+
				`<p class="date">%s</p></div>`+
				`</header>`,
			templ.EscapeString(rec.AvatarURL()),
			templ.EscapeString(Greeting(data.Now.Hour())),
			templ.EscapeString(rec.UserName),
			clockFormatAttr(rec.Is24Hour),
			templ.EscapeString(FormatClock(data.Now, rec.Is24Hour)),
			templ.EscapeString(FormatDate(data.Now)),
		); err != nil {
			return err
		}

		if err := weatherCard(data.Weather, rec.Unit).Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<section class="search"><form method="post" action="/api/search">`+
				`<input type="search" name="q" placeholder="Ask anything..." value="%s" autocomplete="off">`+
				`</form><div class="search-response" data-busy="%t">%s</div></section>`,
			templ.EscapeString(data.Search.Query),
			data.Search.Busy,
			templ.EscapeString(data.Search.Response),
		); err != nil {
			return err
		}

		if err := shortcutGrid().Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<section class="chat"><div class="chat-response" data-busy="%t">%s</div>`+
				`<form method="post" action="/api/chat">`+
				`<input type="text" name="prompt" placeholder="Chat with AI" autocomplete="off">`+
				`</form></section>`,
			data.Chat.Busy,
			templ.EscapeString(data.Chat.Response),
		); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<section class="notes"><form method="post" action="/api/notes">`+
				`<textarea name="notes" placeholder="Notes...">%s</textarea>`+
				`<button type="submit">Save</button></form></section>`,
			templ.EscapeString(data.Notes),
		); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w,
			`<section class="wallpaper"><form method="post" action="/api/wallpaper">`+
				`<input type="text" name="prompt" placeholder="Generate a wallpaper..." autocomplete="off">`+
				`</form><p class="wallpaper-status" data-busy="%t">%s</p></section>`,
			data.Wallpaper.Busy,
			templ.EscapeString(data.Wallpaper.Message),
		)
		return err
	})
}

func clockFormatAttr(is24Hour bool) string {
	if is24Hour {
		return "24h"
	}
	return "12h"
}

func weatherCard(snapshot weather.Snapshot, unit string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="weather" data-icon="%s">`+
				`<p class="temperature">%s</p>`+
				`<p class="condition">%s</p>`+
				`<p class="place">%s</p>`+
				`<p class="detail">Humidity %d%% · Wind %.1f</p>`+
				`</section>`,
			templ.EscapeString(snapshot.Icon),
			templ.EscapeString(TemperatureLabel(snapshot.Temperature, unit)),
			templ.EscapeString(snapshot.Condition),
			templ.EscapeString(snapshot.Location),
			snapshot.Humidity,
			snapshot.Wind,
		)
		return err
	})
}

func shortcutGrid() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="shortcuts">`); err != nil {
			return err
		}
		for _, shortcut := range shortcuts.All() {
			if _, err := fmt.Fprintf(w,
				`<a class="shortcut" href="%s" data-icon="%s">%s</a>`,
				templ.EscapeString(shortcut.URL),
				templ.EscapeString(shortcut.Icon),
				templ.EscapeString(shortcut.Name),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}
