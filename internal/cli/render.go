package cli

import (
	"html"
	"strings"

	"github.com/roach88/tally/internal/token"
)

// Markup renders display fragments as span markup, one element per
// fragment tagged with its semantic class. This is the presentation
// side of the rendering boundary; the core only ever emits fragments.
func Markup(frags []token.Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(`<span class="`)
		b.WriteString(string(f.Class))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(f.Text))
		b.WriteString(`</span>`)
	}
	return b.String()
}
