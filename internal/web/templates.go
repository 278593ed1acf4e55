package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Azterny/Brawl-Track-sub000/internal/router"
	"github.com/Azterny/Brawl-Track-sub000/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func parseTemplates(assets view.Assets) (*template.Template, error) {
	funcs := template.FuncMap{
		"brawlerImg":  assets.Brawler,
		"modeImg":     assets.Mode,
		"fallbackImg": func() string { return assets.Fallback },
		"playerPath":  router.PlayerPath,
		"clubPath":    router.ClubPath,
		"roleLabel":   view.RoleLabel,
		"isWin":       view.IsWin,
		"signed":      signed,
		"nameColor":   nameColor,
	}
	t, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// nameColor converts the API's 0xAARRGGBB colors to CSS hex.
func nameColor(c string) string {
	c = strings.ToLower(strings.TrimPrefix(strings.ToLower(c), "0x"))
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return "inherit"
	}
	for _, r := range c {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return "inherit"
		}
	}
	return "#" + c
}
