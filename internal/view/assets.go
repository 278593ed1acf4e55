package view

import (
	"fmt"
	"strings"
)

// Assets builds CDN image URLs. Templates pair them with Fallback through the
// image onerror handler.
type Assets struct {
	BaseURL  string
	Fallback string
}

func (a Assets) Brawler(id int) string {
	return fmt.Sprintf("%s/brawlers/borders/%d.png", a.BaseURL, id)
}

func (a Assets) Mode(mode string) string {
	return fmt.Sprintf("%s/game-modes/regular/%s.png", a.BaseURL, ModeSlug(mode))
}

func (a Assets) Map(id int) string {
	return fmt.Sprintf("%s/maps/regular/%d.png", a.BaseURL, id)
}

// ModeSlug turns an API mode name ("gemGrab", "Gem Grab") into its asset key
// ("gem-grab").
func ModeSlug(mode string) string {
	var b strings.Builder
	for i, r := range mode {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
