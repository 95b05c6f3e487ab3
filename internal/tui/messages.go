package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/shell"
)

// Results of API round-trips. They are produced off the update loop and
// applied to the shell inside Update.
type (
	itemsLoadedMsg struct {
		items []model.Item
		err   error
	}
	itemCreatedMsg struct {
		item model.Item
		err  error
	}
	itemUpdatedMsg struct {
		id   string
		item model.Item
		err  error
	}
	itemDeletedMsg struct {
		id  string
		err error
	}
)

func loadCmd(ctx context.Context, c shell.API) tea.Cmd {
	return func() tea.Msg {
		items, err := c.GetItems(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func createCmd(ctx context.Context, c shell.API, dto model.CreateItemDto) tea.Cmd {
	return func() tea.Msg {
		it, err := c.CreateItem(ctx, dto)
		return itemCreatedMsg{item: it, err: err}
	}
}

func updateCmd(ctx context.Context, c shell.API, id string, dto model.UpdateItemDto) tea.Cmd {
	return func() tea.Msg {
		it, err := c.UpdateItem(ctx, id, dto)
		return itemUpdatedMsg{id: id, item: it, err: err}
	}
}

func deleteCmd(ctx context.Context, c shell.API, id string) tea.Cmd {
	return func() tea.Msg {
		return itemDeletedMsg{id: id, err: c.DeleteItem(ctx, id)}
	}
}
