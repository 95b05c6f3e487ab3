package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/ui"
)

// itemForm collects a new item. The only check it makes is a non-empty title.
type itemForm struct {
	keys keyMap

	title     textinput.Model
	desc      textarea.Model
	descFocus bool
	focused   bool

	submitting bool
	invalid    string

	width int

	onSubmit func(dto model.CreateItemDto) tea.Cmd
}

func newItemForm(keys keyMap) itemForm {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Description (optional)"
	ta.SetHeight(2)

	return itemForm{keys: keys, title: ti, desc: ta}
}

func (f *itemForm) SetWidth(w int) {
	f.width = w
	f.title.Width = max(w-len(f.title.Prompt)-6, 10)
	f.desc.SetWidth(max(w-6, 10))
}

func (f *itemForm) Focus() tea.Cmd {
	f.focused = true
	f.descFocus = false
	f.desc.Blur()
	return f.title.Focus()
}

func (f *itemForm) Blur() {
	f.focused = false
	f.title.Blur()
	f.desc.Blur()
}

func (f *itemForm) reset() {
	f.title.SetValue("")
	f.desc.Reset()
	f.invalid = ""
}

func (f *itemForm) dto() model.CreateItemDto {
	dto := model.CreateItemDto{Title: strings.TrimSpace(f.title.Value())}
	if d := f.desc.Value(); strings.TrimSpace(d) != "" {
		dto.Description = model.Ptr(d)
	}
	return dto
}

func (f *itemForm) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	dto := f.dto()
	if err := dto.Validate(); err != nil {
		f.invalid = "Title cannot be empty"
		return nil
	}
	f.invalid = ""
	f.submitting = true
	return f.onSubmit(dto)
}

// createFinished clears the buffers on success. On failure they are kept;
// the banner reports it.
func (f *itemForm) createFinished(err error) {
	f.submitting = false
	if err == nil {
		f.reset()
	}
}

func (f itemForm) Update(msg tea.Msg) (itemForm, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.keys.Save):
			return f, f.submit()
		case key.Matches(km, f.keys.Switch):
			f.descFocus = !f.descFocus
			if f.descFocus {
				f.title.Blur()
				return f, f.desc.Focus()
			}
			f.desc.Blur()
			return f, f.title.Focus()
		}
	}
	var cmd tea.Cmd
	if f.descFocus {
		f.desc, cmd = f.desc.Update(msg)
	} else {
		f.title, cmd = f.title.Update(msg)
	}
	return f, cmd
}

func (f itemForm) View() string {
	t := ui.Current()
	heading := "Add new item"
	if !f.focused {
		heading += t.Muted.Render("  (press n)")
	}
	if f.submitting {
		heading += "  " + t.Muted.Render("Adding"+t.SymBusy)
	}
	if f.invalid != "" {
		heading += ": " + t.Error.Render(f.invalid)
	}
	return heading + "\n" + f.title.View() + "\n" + f.desc.View()
}
