package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/753753753/Card-game/internal/config"
	"github.com/753753753/Card-game/internal/game"
)

const defaultMaxHand = 13

// App is the score keeper's tea.Model. It renders the tracker and turns key
// presses into tracker commands; it never edits game state directly.
type App struct {
	ctx       context.Context
	tracker   *game.Tracker
	log       *zap.Logger
	keys      keyMap
	inputs    []textinput.Model
	focus     int
	maxHand   int
	status    string
	statusErr bool
	width     int
	height    int
}

func New(ctx context.Context, tracker *game.Tracker, ui config.UIConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	maxHand := ui.MaxHand
	if maxHand <= 0 {
		maxHand = defaultMaxHand
	}
	a := &App{
		ctx:     ctx,
		tracker: tracker,
		log:     log,
		keys:    newKeyMap(),
		maxHand: maxHand,
	}
	a.inputs = make([]textinput.Model, len(tracker.Players()))
	for i := range a.inputs {
		inp := textinput.New()
		inp.Prompt = ""
		inp.Placeholder = fmt.Sprintf("0-%d", maxHand)
		inp.CharLimit = 3
		inp.Width = 5
		a.inputs[i] = inp
	}
	a.syncInputs()
	a.focusInput(0)
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.tracker.Phase() == game.Finalized {
			return a.updateResult(m)
		}
		return a.updateEditing(m)
	}
	if a.tracker.Phase() == game.Editing {
		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateEditing(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed, err := a.tracker.Editor()
	if err != nil {
		a.fail("edit", err)
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Commit):
		round := a.tracker.Round()
		err := ed.CommitRound(a.ctx)
		a.syncInputs()
		a.focusInput(0)
		if err != nil {
			a.fail("save round", err)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Round %d saved", round))
	case key.Matches(m, a.keys.Undo):
		undone, err := ed.UndoLastRound(a.ctx)
		if err != nil {
			a.fail("undo", err)
			return a, nil
		}
		if !undone {
			a.setStatus("No rounds to undo")
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Round %d removed", a.tracker.Round()))
	case key.Matches(m, a.keys.Finalize):
		if err := ed.Finalize(a.ctx); err != nil {
			a.fail("submit", err)
			return a, nil
		}
		a.setStatus("")
	case key.Matches(m, a.keys.Next):
		a.focusInput(a.focus + 1)
	case key.Matches(m, a.keys.Prev):
		a.focusInput(a.focus - 1)
	default:
		return a.editHand(ed, m)
	}
	return a, nil
}

// editHand forwards the key to the focused input and records the new value.
// Only digits reach the input.
func (a *App) editHand(ed *game.Editor, m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeySpace || (m.Type == tea.KeyRunes && !digitsOnly(m.Runes)) {
		return a, nil
	}
	before := a.inputs[a.focus].Value()
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(m)
	after := a.inputs[a.focus].Value()
	if after == before {
		return a, cmd
	}
	if err := ed.SetHand(a.ctx, a.focus, after); err != nil {
		a.fail("save hand", err)
		return a, cmd
	}
	if a.statusErr {
		a.setStatus("")
	}
	return a, cmd
}

func (a *App) updateResult(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, err := a.tracker.Result()
	if err != nil {
		a.fail("result", err)
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Back):
		err := res.Resume(a.ctx)
		a.syncInputs()
		a.focusInput(a.focus)
		if err != nil {
			a.fail("resume", err)
			return a, nil
		}
		a.setStatus("")
	case key.Matches(m, a.keys.NewGame):
		err := res.NewGame(a.ctx)
		a.syncInputs()
		a.focusInput(0)
		if err != nil {
			a.fail("new game", err)
			return a, nil
		}
		a.setStatus("New game started")
	}
	return a, nil
}

// syncInputs copies the tracker's hand into the input fields.
func (a *App) syncInputs() {
	hands := a.tracker.Hands()
	for i := range a.inputs {
		if i < len(hands) {
			a.inputs[i].SetValue(hands[i].String())
		}
	}
}

func (a *App) focusInput(i int) {
	n := len(a.inputs)
	if n == 0 {
		return
	}
	i = ((i % n) + n) % n
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
	a.focus = i
	a.inputs[i].Focus()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) fail(op string, err error) {
	a.status = op + ": " + err.Error()
	a.statusErr = true
	a.log.Error(op, zap.Error(err))
}

func digitsOnly(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
