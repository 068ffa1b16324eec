// Package prompt renders the interactive version picker used by `nvmd use`.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/terminal"
)

// ErrNotInteractive is returned when no terminal is attached.
var ErrNotInteractive = errors.New(messages.PromptRequiresTerminal)

// ErrCancelled is returned when the user leaves the picker with Esc or Ctrl+C.
var ErrCancelled = errors.New(messages.PromptCancelled)

// Option is one selectable entry.
type Option struct {
	Label string
	Value string
}

// Selector asks the user to pick one option.
type Selector interface {
	Select(title string, options []Option, value *string) error
}

// HuhUI implements Selector with charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	input      io.Reader
	output     io.Writer
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI returns a picker that renders on stderr.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive, output: os.Stderr}
}

// Select renders a single-choice list. value holds the preselected entry on input and the
// chosen one on success.
func (ui *HuhUI) Select(title string, options []Option, value *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	))
}

func (ui *HuhUI) runForm(form *huh.Form) error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return ErrNotInteractive
	}

	programOptions := []tea.ProgramOption{tea.WithFilter(formFilter)}
	if ui.input != nil {
		programOptions = append(programOptions, tea.WithInput(ui.input))
	}
	if ui.output != nil {
		programOptions = append(programOptions, tea.WithOutput(ui.output))
	}
	form.WithKeyMap(keyMap())
	form.WithProgramOptions(programOptions...)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// keyMap lets Esc leave the picker alongside Ctrl+C and turns off list filtering.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// formFilter turns an interrupt into a regular quit so the renderer clears the form.
func formFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}
