// Package tui is the interactive items manager: a header, the global error
// banner, the new-item form, and the item list.
package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/shell"
	"github.com/idilsaglam/items/internal/ui"
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
)

// App is the bubbletea model. It owns the shell; every reconciliation
// happens inside Update.
type App struct {
	ctx   context.Context
	shell *shell.Shell
	log   zerolog.Logger
	keys  keyMap

	list    itemList
	form    itemForm
	spinner spinner.Model
	help    help.Model
	focus   focusArea

	width, height int
}

func New(ctx context.Context, s *shell.Shell, logger zerolog.Logger) App {
	keys := defaultKeys()
	a := App{
		ctx:     ctx,
		shell:   s,
		log:     logger,
		keys:    keys,
		list:    newItemList(keys),
		form:    newItemForm(keys),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
	}
	c := s.API()
	a.list.onUpdate = func(id string, dto model.UpdateItemDto) tea.Cmd { return updateCmd(ctx, c, id, dto) }
	a.list.onDelete = func(id string) tea.Cmd { return deleteCmd(ctx, c, id) }
	a.form.onSubmit = func(dto model.CreateItemDto) tea.Cmd { return createCmd(ctx, c, dto) }

	a.resize(termSize())
	a.list.SetItems(s.Items())
	return a
}

func (a App) Init() tea.Cmd {
	a.shell.BeginLoad()
	return tea.Batch(a.spinner.Tick, loadCmd(a.ctx, a.shell.API()))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if !a.shell.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case itemsLoadedMsg:
		a.shell.Loaded(msg.items, msg.err)
		a.log.Debug().Int("count", len(msg.items)).Bool("failed", msg.err != nil).Msg("load finished")
		a.list.SetItems(a.shell.Items())
		return a, nil

	case itemCreatedMsg:
		a.shell.Created(msg.item, msg.err)
		a.form.createFinished(msg.err)
		a.list.SetItems(a.shell.Items())
		if msg.err == nil {
			a.list.cursor = 0
		}
		return a, nil

	case itemUpdatedMsg:
		a.shell.Updated(msg.id, msg.item, msg.err)
		a.list.SetItems(a.shell.Items())
		a.list.updateFinished(msg.id)
		return a, nil

	case itemDeletedMsg:
		a.shell.Deleted(msg.id, msg.err)
		a.list.SetItems(a.shell.Items())
		a.list.deleteFinished(msg.id)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and friends go to whatever has focus.
	return a.forward(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.focus == focusForm {
		if key.Matches(msg, a.keys.Cancel) {
			a.form.Blur()
			a.focus = focusList
			return a, nil
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	// Inline editor captures every key.
	if a.list.Editing() {
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.New):
		a.focus = focusForm
		return a, a.form.Focus()
	case key.Matches(msg, a.keys.Reload):
		a.shell.BeginLoad()
		return a, loadCmd(a.ctx, a.shell.API())
	}
	if a.shell.Loading() {
		return a, nil
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.focus == focusForm:
		a.form, cmd = a.form.Update(msg)
	case a.list.Editing():
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.help.Width = w
	a.form.SetWidth(w - 2)
	// header, banner, form, help and borders
	a.list.SetSize(w-2, h-14)
}

func (a App) View() string {
	t := ui.Current()
	sections := []string{t.Title.Render("Items Manager")}

	if e := a.shell.Error(); e != "" {
		banner := lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1).
			Render(t.Error.Render(e))
		sections = append(sections, banner)
	}

	formBox := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	sections = append(sections, formBox.Render(a.form.View()))

	if a.shell.Loading() {
		sections = append(sections, a.spinner.View()+" Loading items...")
	} else {
		sections = append(sections, a.list.View())
	}

	var h help.KeyMap = browseHelp{a.keys}
	if a.focus == focusForm || a.list.Editing() {
		h = editHelp{a.keys}
	}
	sections = append(sections, a.help.View(h))

	return ui.Panel(sections)
}

// Run starts the interactive manager and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, s *shell.Shell, logger zerolog.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, s, logger), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// termSize is the size before the first WindowSizeMsg arrives.
func termSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
