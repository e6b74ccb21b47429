package render

import (
	"log/slog"
	"strings"

	darkmode "github.com/thiagokokada/dark-mode-go"
)

type Theme int

const (
	ThemeAuto Theme = iota
	ThemeLight
	ThemeDark
)

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

var detectDarkMode = darkmode.IsDarkMode

// ThemeFromString maps unknown values to ThemeAuto.
func ThemeFromString(raw string) Theme {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeDark.String():
		return ThemeDark
	case ThemeLight.String():
		return ThemeLight
	default:
		return ThemeAuto
	}
}

// Resolve turns ThemeAuto into the desktop preference, falling back to light.
func (t Theme) Resolve() Theme {
	if t != ThemeAuto {
		return t
	}
	if detectDarkMode != nil {
		dark, err := detectDarkMode()
		if err != nil {
			slog.Debug("detect dark-mode", slog.Any("error", err))
			return ThemeLight
		}
		if dark {
			return ThemeDark
		}
	}
	return ThemeLight
}

type palette struct {
	chromaStyle string
	current     string
	hash        string
	remote      string
	header      string
	border      string
}

var (
	lightPalette = palette{
		chromaStyle: "github",
		current:     "28",
		hash:        "130",
		remote:      "244",
		header:      "25",
		border:      "250",
	}
	darkPalette = palette{
		chromaStyle: "github-dark",
		current:     "114",
		hash:        "179",
		remote:      "243",
		header:      "75",
		border:      "238",
	}
)

func (t Theme) palette() palette {
	if t.Resolve() == ThemeDark {
		return darkPalette
	}
	return lightPalette
}
