package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/selnav/internal/keymap"
)

var (
	styleNormal   = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleCursor   = tcell.StyleDefault.Reverse(true)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDangling = tcell.StyleDefault.Dim(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// draw renders the object list on the left, the history on the right and
// a status line at the bottom.
func (app *Application) draw() {
	s := app.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	left := w / 2
	app.drawObjects(0, left-1, h-1)
	app.drawHistory(left, w-left, h-1)
	app.drawStatus(w, h-1)
	s.Show()
}

func (app *Application) drawObjects(x, width, height int) {
	sc := app.space.Current()
	drawText(app.screen, x, 0, width, styleTitle, "Scene: "+sc.Name())

	rows := height - 1
	start := scrollStart(app.cursor, sc.Len(), rows)
	for row := 0; row < rows && start+row < sc.Len(); row++ {
		i := start + row
		obj := sc.At(i)
		style := styleNormal
		marker := "  "
		if obj.Ref == app.sel.Active() {
			style = styleActive
			marker = "* "
		}
		if i == app.cursor {
			style = styleCursor
		}
		drawText(app.screen, x, row+1, width, style, marker+obj.Label())
	}
}

func (app *Application) drawHistory(x, width, height int) {
	entries := app.tracker.Entries()
	title := fmt.Sprintf("History %d/%d", app.tracker.Len(), app.tracker.Capacity())
	drawText(app.screen, x, 0, width, styleTitle, title)

	rows := height - 1
	current := len(entries) - 1 - app.tracker.Offset()
	start := scrollStart(current, len(entries), rows)
	for row := 0; row < rows && start+row < len(entries); row++ {
		i := start + row
		ref := entries[i]
		label, style := "<gone> "+ref.Short(), styleDangling
		if obj, ok := app.space.Lookup(ref); ok {
			label, style = obj.Label(), styleNormal
		}
		marker := "  "
		if i == current {
			marker = "> "
			style = style.Bold(true)
		}
		drawText(app.screen, x, row+1, width, style, fmt.Sprintf("%s%2d %s", marker, i+1, label))
	}
}

func (app *Application) drawStatus(width, y int) {
	prev := strings.Join(app.keys.KeysFor(keymap.CmdPrevious), "/")
	next := strings.Join(app.keys.KeysFor(keymap.CmdNext), "/")
	line := fmt.Sprintf(" offset %d  %s back  %s forward", app.tracker.Offset(), prev, next)
	if app.status != "" {
		line += "  | " + app.status
	}
	for x := 0; x < width; x++ {
		app.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	drawText(app.screen, 0, y, width, styleStatus, line)
}

// scrollStart returns the first visible row that keeps sel on screen.
func scrollStart(sel, n, rows int) int {
	if rows <= 0 || n <= rows || sel < rows {
		return 0
	}
	if sel >= n {
		sel = n - 1
	}
	return sel - rows + 1
}

// drawText writes text at (x, y), truncated to width display cells.
func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	if width <= 0 {
		return
	}
	text = runewidth.Truncate(text, width, "…")
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
