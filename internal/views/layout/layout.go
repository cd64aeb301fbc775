// Package layout provides the shared page shell for the dashboard views.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps content in the HTML shell, painting the configured wallpaper as
// the page background.
func Base(title, wallpaperURL string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`+
				`<link rel="stylesheet" href="/assets/skylight.css">`+
				`</head><body class="dashboard" style="background-image:url('%s')">`,
			templ.EscapeString(title),
			templ.EscapeString(wallpaperURL),
		); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<script src="/assets/skylight.js"></script></body></html>`)
		return err
	})
}
