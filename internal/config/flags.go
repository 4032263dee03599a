package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	Force           *bool
	LogLevel        *string
	LogFilePath     *string
	Debug           *bool
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	WordWrap        *bool
	Storage         *string
	UndoLimit       *int
	SystemClipboard *bool
	NoPlugins       *bool
	PluginDirs      *string
}

// NewFlags defines all flags on fs (flag.CommandLine when nil).
func NewFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	f := &Flags{fs: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.Force = fs.Bool("force", false, "Start even when stdin is not a terminal")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error)")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file")
	f.Debug = fs.Bool("debug", false, "Shorthand for -loglevel debug")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of log tags to enable")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of log tags to disable")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to log")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to silence")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of source files to log")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of source files to silence")
	f.WordWrap = fs.Bool("wrap", false, "Start with word wrap enabled")
	f.Storage = fs.String("storage", "", "Document storage: auto, lines or rope")
	f.UndoLimit = fs.Int("undo-limit", 0, "Maximum number of undo entries")
	f.SystemClipboard = fs.Bool("system-clipboard", true, "Use the system clipboard when available")
	f.NoPlugins = fs.Bool("no-plugins", false, "Do not load script plugins")
	f.PluginDirs = fs.String("plugin-dirs", "", "Comma-separated list of plugin directories")
	return f
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with values from flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "debug":
			if *f.Debug {
				cfg.Logger.LogLevel = "debug"
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "wrap":
			cfg.Editor.WordWrap = *f.WordWrap
		case "storage":
			if *f.Storage != "" {
				cfg.Editor.Storage = *f.Storage
			}
		case "undo-limit":
			if *f.UndoLimit > 0 {
				cfg.Editor.UndoLimit = *f.UndoLimit
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "no-plugins":
			if *f.NoPlugins {
				cfg.Plugins.Enabled = false
			}
		case "plugin-dirs":
			cfg.Plugins.Dirs = splitCommaList(*f.PluginDirs)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
