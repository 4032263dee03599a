// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kgilper/kpad/internal/logger"
)

// Theme maps style names to tcell styles. UI elements use capitalized
// names ("StatusBar"); syntax captures use lower-case ones ("keyword").
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, then its base before the first dot, then
// "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if i := strings.IndexByte(name, '.'); i != -1 {
		if style, ok := t.Styles[name[:i]]; ok {
			return style
		}
	}
	if style, ok := t.Styles["Default"]; ok {
		return style
	}
	logger.Warnf("theme %q: no style %q and no Default", t.Name, name)
	return tcell.StyleDefault
}

// DefaultThemeName is selected when the configured theme is missing.
const DefaultThemeName = "kpad dark"

func builtinThemes() []*Theme {
	return []*Theme{darkTheme(), lightTheme()}
}

func darkTheme() *Theme {
	bg := tcell.NewHexColor(0x23272e)
	fg := tcell.NewHexColor(0xc8ccd4)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	bar := tcell.StyleDefault.Background(bg).Foreground(fg)

	return &Theme{
		Name:   "kpad Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Gutter":            base.Foreground(muted),
			"GutterCurrent":     base.Foreground(yellow),
			"Selection":         base.Reverse(true),
			"SearchHighlight":   tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack),
			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(yellow),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarError":    bar.Foreground(tcell.NewHexColor(0xe06c75)).Bold(true),
			"Prompt":            bar.Foreground(green).Bold(true),

			"keyword":  base.Foreground(blue).Bold(true),
			"string":   base.Foreground(green),
			"comment":  base.Foreground(muted).Italic(true),
			"number":   base.Foreground(orange),
			"constant": base.Foreground(orange),
			"type":     base.Foreground(cyan),
			"function": base.Foreground(yellow),
		},
	}
}

func lightTheme() *Theme {
	fg := tcell.NewHexColor(0x383a42)
	bar := tcell.StyleDefault.Background(tcell.NewHexColor(0xe5e5e6)).Foreground(fg)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	return &Theme{
		Name: "kpad Light",
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Gutter":            base.Foreground(tcell.NewHexColor(0x9d9d9f)),
			"GutterCurrent":     base.Foreground(tcell.NewHexColor(0x4078f2)),
			"Selection":         base.Reverse(true),
			"SearchHighlight":   tcell.StyleDefault.Background(tcell.NewHexColor(0xf0c674)).Foreground(tcell.ColorBlack),
			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(tcell.NewHexColor(0xc18401)),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarError":    bar.Foreground(tcell.NewHexColor(0xe45649)).Bold(true),
			"Prompt":            bar.Foreground(tcell.NewHexColor(0x50a14f)).Bold(true),

			"keyword":  base.Foreground(tcell.NewHexColor(0xa626a4)),
			"string":   base.Foreground(tcell.NewHexColor(0x50a14f)),
			"comment":  base.Foreground(tcell.NewHexColor(0xa0a1a7)).Italic(true),
			"number":   base.Foreground(tcell.NewHexColor(0x986801)),
			"constant": base.Foreground(tcell.NewHexColor(0x986801)),
			"type":     base.Foreground(tcell.NewHexColor(0xc18401)),
			"function": base.Foreground(tcell.NewHexColor(0x4078f2)),
		},
	}
}
