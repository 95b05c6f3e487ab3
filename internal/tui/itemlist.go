package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/ui"
)

// itemList renders the collection and owns the per-row transient state:
// at most one row being edited and at most one row being deleted.
// Changes go back to the app through onUpdate and onDelete.
type itemList struct {
	items  []model.Item
	cursor int
	keys   keyMap

	// Inline edit
	editingID string
	title     textinput.Model
	desc      textarea.Model
	descFocus bool
	saving    bool // update for editingID is in flight

	// Delete in flight; its control is disabled.
	deletingID string

	width, height int

	onUpdate func(id string, dto model.UpdateItemDto) tea.Cmd
	onDelete func(id string) tea.Cmd
}

func newItemList(keys keyMap) itemList {
	ti := textinput.New()
	ti.Prompt = "title > "
	ti.CharLimit = 200

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Description"
	ta.SetHeight(3)

	return itemList{keys: keys, title: ti, desc: ta}
}

// SetItems replaces the rows. An editor or delete marker whose row is gone
// is dropped with it.
func (l *itemList) SetItems(items []model.Item) {
	l.items = items
	if l.editingID != "" && !contains(items, l.editingID) {
		l.cancelEdit()
	}
	if l.deletingID != "" && !contains(items, l.deletingID) {
		l.deletingID = ""
	}
	if l.cursor >= len(items) {
		l.cursor = len(items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *itemList) SetSize(w, h int) {
	l.width, l.height = w, h
	l.title.Width = max(w-len(l.title.Prompt)-4, 10)
	l.desc.SetWidth(max(w-4, 10))
}

// Editing reports whether an inline editor has focus.
func (l itemList) Editing() bool { return l.editingID != "" }

func (l itemList) selected() (model.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return model.Item{}, false
	}
	return l.items[l.cursor], true
}

// startEdit seeds the scratch buffers from it. Any other unsaved edit is dropped.
func (l *itemList) startEdit(it model.Item) tea.Cmd {
	l.editingID = it.ID
	l.saving = false
	l.title.SetValue(it.Title)
	l.title.CursorEnd()
	l.desc.SetValue(it.Description)
	l.descFocus = false
	l.desc.Blur()
	return l.title.Focus()
}

func (l *itemList) cancelEdit() {
	l.editingID = ""
	l.saving = false
	l.title.SetValue("")
	l.title.Blur()
	l.desc.Reset()
	l.desc.Blur()
	l.descFocus = false
}

// saveEdit always sends both fields, changed or not.
func (l *itemList) saveEdit() tea.Cmd {
	l.saving = true
	dto := model.UpdateItemDto{
		Title:       model.Ptr(l.title.Value()),
		Description: model.Ptr(l.desc.Value()),
	}
	return l.onUpdate(l.editingID, dto)
}

// updateFinished closes the editor whether the update worked or not; a
// failure only shows in the app's banner.
func (l *itemList) updateFinished(id string) {
	if l.saving && l.editingID == id {
		l.cancelEdit()
	}
}

func (l *itemList) deleteFinished(id string) {
	if l.deletingID == id {
		l.deletingID = ""
	}
}

func (l itemList) Update(msg tea.Msg) (itemList, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)

	if l.Editing() {
		if isKey {
			switch {
			case l.saving:
				// Wait for the round-trip.
				return l, nil
			case key.Matches(km, l.keys.Save):
				return l, l.saveEdit()
			case key.Matches(km, l.keys.Cancel):
				l.cancelEdit()
				return l, nil
			case key.Matches(km, l.keys.Switch):
				l.descFocus = !l.descFocus
				if l.descFocus {
					l.title.Blur()
					return l, l.desc.Focus()
				}
				l.desc.Blur()
				return l, l.title.Focus()
			}
		}
		var cmd tea.Cmd
		if l.descFocus {
			l.desc, cmd = l.desc.Update(msg)
		} else {
			l.title, cmd = l.title.Update(msg)
		}
		return l, cmd
	}

	if !isKey {
		return l, nil
	}
	switch {
	case key.Matches(km, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(km, l.keys.Down):
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
	case key.Matches(km, l.keys.Edit):
		if it, ok := l.selected(); ok && it.ID != l.deletingID {
			return l, l.startEdit(it)
		}
	case key.Matches(km, l.keys.Delete):
		it, ok := l.selected()
		if !ok || l.deletingID == it.ID {
			return l, nil
		}
		l.deletingID = it.ID
		return l, l.onDelete(it.ID)
	}
	return l, nil
}

func (l itemList) View() string {
	t := ui.Current()
	if len(l.items) == 0 {
		return t.Muted.Render(ui.EmptyMessage)
	}

	textWidth := l.width - 4
	var (
		lines     []string
		cursorTop int
	)
	for i, it := range l.items {
		if i > 0 {
			lines = append(lines, "")
		}
		if i == l.cursor {
			cursorTop = len(lines)
		}
		lines = append(lines, l.row(i, it, textWidth)...)
	}
	return strings.Join(window(lines, cursorTop, l.height), "\n")
}

func (l itemList) row(i int, it model.Item, width int) []string {
	t := ui.Current()
	prefix := strings.Repeat(" ", lipgloss.Width(t.SymCursor))
	if i == l.cursor {
		prefix = t.Selected.Render(t.SymCursor)
	}
	indent := strings.Repeat(" ", lipgloss.Width(t.SymCursor))

	var body []string
	if it.ID == l.editingID {
		body = append(body, l.title.View())
		body = append(body, strings.Split(l.desc.View(), "\n")...)
		if l.saving {
			body = append(body, t.Muted.Render("Saving"+t.SymBusy))
		}
	} else {
		body = ui.ItemLines(it, width)
		if it.ID == l.deletingID {
			body[0] += "  " + t.Muted.Render("deleting"+t.SymBusy)
		}
	}

	out := make([]string, len(body))
	for j, b := range body {
		if j == 0 {
			out[j] = prefix + b
		} else {
			out[j] = indent + b
		}
	}
	return out
}

func contains(items []model.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// window returns at most height lines of lines, keeping line top visible.
func window(lines []string, top, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := top
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
