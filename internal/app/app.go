// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kgilper/kpad/internal/config"
	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/highlighter"
	"github.com/kgilper/kpad/internal/input"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/modehandler"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/statusbar"
	"github.com/kgilper/kpad/internal/theme"
	"github.com/kgilper/kpad/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	editor         *core.Editor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	registry       *plugin.Registry
	inputProcessor *input.InputProcessor
	modeHandler    *modehandler.ModeHandler
	themeManager   *theme.Manager
	highlighter    *highlighter.Highlighter
	editorAPI      *appEditorAPI

	// Channels managed by the App
	quit   chan struct{}
	events chan tcell.Event

	// Bracketed paste in progress
	pasting  bool
	pasteBuf strings.Builder
}

// NewApp creates and initializes a new application instance. screen may
// be nil to use the terminal; tests pass a SimulationScreen.
func NewApp(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	themeManager := theme.NewManager(config.ThemesDir(), cfg.Editor.Theme)

	var (
		tuiManager *tui.TUI
		err        error
	)
	if screen == nil {
		tuiManager, err = tui.New(themeManager.Current())
	} else {
		tuiManager, err = tui.NewWithScreen(screen, themeManager.Current())
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	highlighterSvc := highlighter.NewHighlighter()
	registry := plugin.NewRegistry()

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		editor:         core.NewEditor(core.OptionsFromConfig(cfg), eventManager, highlighterSvc),
		statusBar:      statusbar.New(cfg.StatusTimeout()),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(registry, eventManager, cfg.PluginTimeout()),
		registry:       registry,
		inputProcessor: input.NewInputProcessor(),
		themeManager:   themeManager,
		highlighter:    highlighterSvc,
		quit:           make(chan struct{}),
		events:         make(chan tcell.Event, 16),
	}
	a.editorAPI = newEditorAPI(a)
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		InputProcessor: a.inputProcessor,
		StatusBar:      a.statusBar,
		Commands:       registry,
		Host:           a.editorAPI,
		QuitSignal:     a.quit,
	})

	a.subscribeEvents()
	a.registerCommands()

	if filePath != "" {
		if err := a.editor.Open(filePath); err != nil {
			a.tuiManager.Close()
			return nil, err
		}
	}
	return a, nil
}

// Run starts the application's main loop. It returns when the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.editor.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	if a.statusBar.Message() == "" {
		a.statusBar.SetTemporaryMessage("kpad %s | F1 Help | Ctrl+S Save | Ctrl+Q Quit", config.Version)
	}
	a.drawEditor()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			if a.editor.IsModified() {
				logger.Warnf("exited with unsaved changes")
			}
			logger.Infof("exiting application")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.drawEditor()
			}
		case <-ticker.C:
			if a.statusBar.Tick() {
				a.drawEditor()
			}
		}
	}
}

// eventLoop only reads terminal events and hands them to the main loop.
// It ends when the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent processes one terminal event on the main loop and reports
// whether a redraw is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true

	case *tcell.EventPaste:
		if ev.Start() {
			a.pasting = true
			a.pasteBuf.Reset()
			return false
		}
		a.pasting = false
		return a.modeHandler.HandlePaste(a.pasteBuf.String())

	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return false
		}
		ctx := context.Background()
		return a.modeHandler.HandleKeyEvent(ctx, ev)
	}
	return false
}

// collectPaste appends a key from a bracketed paste to the paste buffer.
func (a *App) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.pasteBuf.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		a.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		a.pasteBuf.WriteByte('\t')
	}
}

// Editor returns the editing session.
func (a *App) Editor() *core.Editor { return a.editor }

// GetModeHandler returns the input mode handler.
func (a *App) GetModeHandler() *modehandler.ModeHandler { return a.modeHandler }

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme { return a.themeManager.Current() }

// Registry returns the command registry.
func (a *App) Registry() *plugin.Registry { return a.registry }
