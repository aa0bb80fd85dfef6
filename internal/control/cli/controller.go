package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/config"
	"github.com/ja-he/narrate/internal/control/action"
	"github.com/ja-he/narrate/internal/input"
	"github.com/ja-he/narrate/internal/input/handlers"
	"github.com/ja-he/narrate/internal/potatolog"
	"github.com/ja-he/narrate/internal/search"
	"github.com/ja-he/narrate/internal/speech"
	"github.com/ja-he/narrate/internal/styling"
	"github.com/ja-he/narrate/internal/tui"
)

// Controller drives a handler stack of menus with keys and ticks.
//
// All handler calls happen on the goroutine calling Start, HandleKey, Tick or
// Run.
type Controller struct {
	stack   *handlers.Stack
	router  *handlers.Router
	speaker *speech.Speaker
	view    *tui.MenuView
	root    *handlers.Menu

	menuKeys      map[input.Keyspec]input.Actionspec
	searchTimeout time.Duration

	quit bool
}

// ControllerParams are the parameters for NewController.
type ControllerParams struct {
	Items     []string
	Config    config.Config
	Speaker   *speech.Speaker
	Styles    *styling.Stylesheet
	LogReader potatolog.LogReader
}

// NewController creates a new Controller. Its root menu lists the given
// items; it is pushed by Start.
func NewController(params ControllerParams) (*Controller, error) {
	searchTimeout, err := params.Config.SearchTimeout()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		stack:         handlers.NewStack(),
		speaker:       params.Speaker,
		menuKeys:      params.Config.Keys.Menu,
		searchTimeout: searchTimeout,
	}

	globalActions := map[input.Keyspec]action.Action{}
	for keyspec, actionspec := range params.Config.Keys.Global {
		a, err := c.globalAction(actionspec)
		if err != nil {
			return nil, fmt.Errorf("could not bind global key '%s': %w", keyspec, err)
		}
		globalActions[keyspec] = a
	}
	hotkeys, err := handlers.NewHotkeys("global", globalActions)
	if err != nil {
		return nil, err
	}
	c.router = handlers.NewRouter(c.stack, hotkeys)

	if params.Styles != nil {
		c.view = tui.NewMenuView(c.router, c.speaker.Last, params.LogReader, params.Styles)
	}

	c.root, err = c.newMenu("Main menu", c.rootItems(params.Items), func() {
		c.say("this is the main menu, use the quit key to leave")
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Controller) globalAction(spec input.Actionspec) (action.Action, error) {
	switch spec {
	case "repeat":
		return action.Explained("repeat last utterance", func() {
			if err := c.speaker.Repeat(); err != nil {
				log.Error().Err(err).Msg("could not repeat")
			}
		}), nil
	case "silence":
		return action.Explained("stop speaking", func() {
			if err := c.speaker.Silence(); err != nil {
				log.Error().Err(err).Msg("could not silence")
			}
		}), nil
	case "help":
		return action.Explained("speak and show help", c.help), nil
	case "quit":
		return action.Explained("quit", func() { c.quit = true }), nil
	default:
		return nil, fmt.Errorf("'%s': %w", spec, input.ErrUnknownActionspec)
	}
}

func (c *Controller) rootItems(labels []string) []handlers.MenuItem {
	items := make([]handlers.MenuItem, 0, len(labels))
	for _, label := range labels {
		label := label
		items = append(items, handlers.MenuItem{
			Label:  label,
			Action: action.Explained("open details", func() { c.openDetails(label) }),
		})
	}
	return items
}

func (c *Controller) openDetails(label string) {
	details, err := c.newMenu(speech.FilterForSpeech(label), []handlers.MenuItem{
		{
			Label:  "Read aloud",
			Action: action.Explained("read the item aloud", func() { c.queue(label) }),
		},
		{
			Label:  "Back",
			Action: action.Explained("go back", c.pop),
		},
	}, c.pop)
	if err != nil {
		log.Error().Err(err).Str("item", label).Msg("could not create details menu")
		return
	}
	if err := c.stack.Push(details); err != nil {
		log.Error().Err(err).Str("handler", details.Name()).Msg("could not activate menu")
	}
}

func (c *Controller) newMenu(name string, items []handlers.MenuItem, onClose func()) (*handlers.Menu, error) {
	return handlers.NewMenu(handlers.MenuParams{
		Name:    name,
		Items:   items,
		Speaker: c.speaker,
		Search:  search.NewTypeAhead(nil, c.searchTimeout),
		Keys:    c.menuKeys,
		OnClose: onClose,
	})
}

func (c *Controller) pop() {
	if c.stack.Count() <= 1 {
		return
	}
	if err := c.stack.Pop(); err != nil {
		log.Error().Err(err).Msg("could not pop menu")
	}
}

func (c *Controller) help() {
	entries := c.router.Help()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Description)
	}
	c.say("help: " + strings.Join(parts, ", "))
	if c.view != nil {
		c.view.ToggleHelp()
	}
}

func (c *Controller) say(text string) {
	if err := c.speaker.Say(text); err != nil {
		log.Error().Err(err).Msg("could not speak")
	}
}

func (c *Controller) queue(text string) {
	if err := c.speaker.Queue(text); err != nil {
		log.Error().Err(err).Msg("could not speak")
	}
}

// Start pushes the root menu.
func (c *Controller) Start() error {
	return c.stack.Push(c.root)
}

// HandleKey routes the key to the handlers.
func (c *Controller) HandleKey(key input.Key) {
	if !c.router.HandleKeyDown(key) {
		log.Debug().Str("key", key.ToDebugString()).Msg("key not consumed")
	}
}

// Tick ticks the handlers.
func (c *Controller) Tick() {
	c.router.Tick()
}

// Done returns whether quitting was requested.
func (c *Controller) Done() bool {
	return c.quit
}

// Stack returns the handler stack.
func (c *Controller) Stack() *handlers.Stack {
	return c.stack
}

// Run runs the terminal loop until quitting is requested or the screen goes
// away. Key events are read on a separate goroutine and handed over, so that
// the handlers only ever run on the caller's goroutine.
func (c *Controller) Run(screen *tui.ScreenHandler, tickInterval time.Duration) {
	log.Info().Msg("narrate menu started")
	defer screen.Fini()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.GetEventPollable().PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	c.render(screen)
	for !c.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				c.HandleKey(input.KeyFromTcellEvent(e))
			case *tcell.EventResize:
				screen.NeedsSync()
			}
		case <-ticker.C:
			c.Tick()
		}
		c.render(screen)
	}
	log.Info().Msg("narrate menu quit")
}

func (c *Controller) render(screen *tui.ScreenHandler) {
	if c.view == nil {
		return
	}
	screen.Clear()
	c.view.Draw(screen)
	screen.Show()
}
