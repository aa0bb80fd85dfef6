package tui

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ja-he/narrate/internal/input"
	"github.com/ja-he/narrate/internal/input/handlers"
	"github.com/ja-he/narrate/internal/potatolog"
	"github.com/ja-he/narrate/internal/styling"
)

// MenuView draws the handler stack of a router: a status line naming the
// active handler, the items if it is a menu, the search state, what was
// spoken last and the latest warning.
type MenuView struct {
	router     *handlers.Router
	lastSpoken func() string
	logReader  potatolog.LogReader
	styles     *styling.Stylesheet

	showHelp bool
}

// NewMenuView returns a pointer to a new MenuView.
// The log reader may be nil.
func NewMenuView(
	router *handlers.Router,
	lastSpoken func() string,
	logReader potatolog.LogReader,
	styles *styling.Stylesheet,
) *MenuView {
	return &MenuView{
		router:     router,
		lastSpoken: lastSpoken,
		logReader:  logReader,
		styles:     styles,
	}
}

// ToggleHelp toggles between showing the items and showing the help.
func (v *MenuView) ToggleHelp() {
	v.showHelp = !v.showHelp
}

// Draw draws the view to the renderer.
func (v *MenuView) Draw(r Renderer) {
	x, y, w, h := r.Dimensions()
	if w <= 0 || h < 4 {
		return
	}

	r.DrawBox(x, y, w, h, v.styles.Normal)

	stack := v.router.Stack()
	active := stack.ActiveHandler()
	title := "(nothing)"
	if active != nil {
		names := make([]string, 0, stack.Count())
		for _, handler := range stack.Handlers() {
			names = append(names, handler.Name())
		}
		title = strings.Join(names, " > ")
	}
	r.DrawBox(x, y, w, 1, v.styles.Status)
	r.DrawText(x, y, w, 1, v.styles.Status, title)

	bodyY, bodyH := y+1, h-4
	menu, isMenu := active.(*handlers.Menu)
	switch {
	case v.showHelp:
		v.drawHelp(r, x, bodyY, w, bodyH)
	case isMenu:
		v.drawItems(r, menu, x, bodyY, w, bodyH)
	}

	searchLine := ""
	if isMenu && menu.Search().IsSearchActive() {
		searchLine = fmt.Sprintf("search: %s (%d)", menu.Search().Buffer(), menu.Search().ResultCount())
	}
	r.DrawBox(x, y+h-3, w, 1, v.styles.Status)
	r.DrawText(x, y+h-3, w, 1, v.styles.Status, searchLine)

	r.DrawText(x, y+h-2, w, 1, v.styles.Normal, "» "+v.lastSpoken())

	if warning := v.latestWarning(); warning != "" {
		r.DrawBox(x, y+h-1, w, 1, v.styles.Warning)
		r.DrawText(x, y+h-1, w, 1, v.styles.Warning, warning)
	}
}

func (v *MenuView) drawItems(r Renderer, menu *handlers.Menu, x, y, w, h int) {
	if h <= 0 {
		return
	}
	matching := map[int]bool{}
	searching := menu.Search().IsSearchActive()
	for _, i := range menu.Search().Results() {
		matching[i] = true
	}

	// scroll such that the cursor is always visible
	offset := 0
	if menu.Cursor() >= h {
		offset = menu.Cursor() - h + 1
	}

	for row := 0; row < h && offset+row < len(menu.Items()); row++ {
		i := offset + row
		style := v.styles.Normal
		switch {
		case i == menu.Cursor():
			style = v.styles.Selected
		case searching && !matching[i]:
			style = style.Dimmed()
		}
		r.DrawBox(x, y+row, w, 1, style)
		r.DrawText(x+2, y+row, w-2, 1, style, menu.Label(i))
	}
}

func (v *MenuView) drawHelp(r Renderer, x, y, w, h int) {
	entries := v.router.Help()
	keysWidth := 0
	for _, e := range entries {
		if len(e.Keys) > keysWidth {
			keysWidth = len(e.Keys)
		}
	}
	for row, e := range entries {
		if row >= h {
			return
		}
		r.DrawText(x+2, y+row, w-2, 1, v.styles.Normal, helpLine(e, keysWidth))
	}
}

func helpLine(e input.HelpEntry, keysWidth int) string {
	return fmt.Sprintf("%-*s  %s", keysWidth, e.Keys, e.Description)
}

func (v *MenuView) latestWarning() string {
	if v.logReader == nil {
		return ""
	}
	warnings := v.logReader.AtLeast(zerolog.WarnLevel)
	if len(warnings) == 0 {
		return ""
	}
	latest := warnings[len(warnings)-1]
	msg, _ := latest[zerolog.MessageFieldName].(string)
	return fmt.Sprintf("%d warning(s), latest: %s", len(warnings), msg)
}
