package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"skylight/internal/views/layout"
)

// Login renders the passcode gate. message carries a one-shot flash from a
// failed attempt and may be empty.
func Login(message string) templ.Component {
	return layout.Base("Skylight", "", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<main class="login"><form method="post" action="/login">`+
				`<label for="passcode">Passcode</label>`+
				`<input type="password" id="passcode" name="passcode" autofocus>`+
				`<button type="submit">Unlock</button></form>`,
		); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="flash">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	}))
}
