package app

import (
	"context"

	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/statusbar"
	"github.com/kgilper/kpad/internal/tui"
)

// drawEditor clears the screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	layout := tui.ComputeLayout(width, height, a.editor.GetBuffer().LineCount())
	a.editor.SetViewSize(layout.TextWidth, layout.TextHeight)

	logger.DebugTagf("draw", "drawEditor: screen %dx%d, gutter %d, text %dx%d",
		width, height, layout.Gutter, layout.TextWidth, layout.TextHeight)

	a.editor.UpdateHighlights(context.Background())

	a.tuiManager.Clear()
	if overlay := a.modeHandler.Overlay(); overlay != nil {
		tui.DrawOverlay(a.tuiManager, overlay, currentTheme.GetStyle("Default"))
		a.tuiManager.Show()
		return
	}

	tui.DrawBuffer(a.tuiManager, a.editor, currentTheme, layout)
	cursorX, prompting := a.statusBar.Draw(screen, width, height, currentTheme)
	if prompting {
		screen.ShowCursor(cursorX, height-1)
	} else {
		tui.DrawCursor(a.tuiManager, a.editor, layout)
	}
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetInfo(statusbar.Info{
		FilePath:   a.editor.FilePath(),
		Modified:   a.editor.IsModified(),
		Cursor:     a.editor.GetCursor(),
		LineCount:  buf.LineCount(),
		LineEnding: buf.LineEnding(),
		Language:   a.editor.Language(),
		WordWrap:   a.editor.Viewport().WordWrap(),
	})
}
