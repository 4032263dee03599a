package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/tui"
	"github.com/kgilper/kpad/internal/types"
)

const builtin = "builtin"

// RegisterAppCommands registers the built-in commands on reg.
func RegisterAppCommands(reg *plugin.Registry, api AppAPI) {
	RegisterThemeCommands(reg, api)
	register(reg, documentCommands(reg, api)...)
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(reg *plugin.Registry, api ThemeAPI) {
	themeCmd := func(_ context.Context, _ *plugin.Handle, args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", api.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // theme names may contain spaces
		if err := api.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", api.GetTheme().Name)
		return nil
	}

	themeListCmd := func(context.Context, *plugin.Handle, []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	}

	register(reg,
		plugin.Command{Name: "theme", Description: "Show or set the color theme", Source: builtin, Run: themeCmd},
		plugin.Command{Name: "themes", Description: "List available themes", Source: builtin, Run: themeListCmd},
	)
}

func documentCommands(reg *plugin.Registry, api AppAPI) []plugin.Command {
	return []plugin.Command{
		{
			Name:        "stats",
			Description: "Show document statistics",
			Source:      builtin,
			Run: func(context.Context, *plugin.Handle, []string) error {
				api.ShowOverlay(tui.StatsLines(api.Editor().Stats()))
				return nil
			},
		},
		{
			Name:        "help",
			Description: "Show key bindings",
			Source:      builtin,
			Run: func(context.Context, *plugin.Handle, []string) error {
				api.ShowOverlay(tui.HelpLines())
				return nil
			},
		},
		{
			Name:        "commands",
			Description: "List commands",
			Source:      builtin,
			Run: func(context.Context, *plugin.Handle, []string) error {
				var names []string
				for _, c := range reg.List() {
					names = append(names, c.Name)
				}
				api.SetStatusMessage("Commands: %s", strings.Join(names, ", "))
				return nil
			},
		},
		{
			Name:        "replace",
			Description: "Replace every occurrence: replace <text> <with>",
			Source:      builtin,
			Run: func(_ context.Context, _ *plugin.Handle, args []string) error {
				if len(args) == 0 || len(args) > 2 {
					return fmt.Errorf("usage: replace <text> [with]")
				}
				with := ""
				if len(args) == 2 {
					with = args[1]
				}
				n, err := api.Editor().ReplaceAll(args[0], with)
				if err != nil {
					return err
				}
				api.SetStatusMessage("Replaced %d occurrence(s)", n)
				return nil
			},
		},
		{
			Name:        "goto",
			Description: "Go to a line number",
			Source:      builtin,
			Run: func(_ context.Context, _ *plugin.Handle, args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: goto <line>")
				}
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid line number: %s", args[0])
				}
				api.Editor().GotoLine(n - 1)
				return nil
			},
		},
		{
			Name:        "wrap",
			Description: "Toggle word wrap",
			Source:      builtin,
			Run: func(context.Context, *plugin.Handle, []string) error {
				on := api.Editor().ToggleWordWrap()
				api.SetStatusMessage("Word wrap: %s", onOff(on))
				return nil
			},
		},
		{
			Name:        "eol",
			Description: "Show or set line endings: eol [lf|crlf]",
			Source:      builtin,
			Run: func(_ context.Context, _ *plugin.Handle, args []string) error {
				ed := api.Editor()
				if len(args) == 0 {
					api.SetStatusMessage("Line endings: %s", ed.LineEnding())
					return nil
				}
				var want types.LineEnding
				switch strings.ToLower(args[0]) {
				case "lf":
					want = types.LF
				case "crlf":
					want = types.CRLF
				default:
					return fmt.Errorf("unknown line ending %q (want lf or crlf)", args[0])
				}
				if ed.LineEnding() != want {
					ed.ToggleLineEnding()
				}
				api.SetStatusMessage("Line endings: %s", want)
				return nil
			},
		},
		{
			Name:        "save",
			Description: "Save, optionally to a new path",
			Source:      builtin,
			Run: func(_ context.Context, _ *plugin.Handle, args []string) error {
				ed := api.Editor()
				var err error
				if len(args) > 0 {
					err = ed.SaveAs(strings.Join(args, " "))
				} else {
					err = ed.Save()
				}
				if err != nil {
					return err
				}
				api.SetStatusMessage("Saved %s", ed.FilePath())
				return nil
			},
		},
	}
}

func register(reg *plugin.Registry, cmds ...plugin.Command) {
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", c.Name, err)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
