package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/idilsaglam/items/internal/model"
)

// EmptyMessage is shown instead of a list when there are no items.
const EmptyMessage = "No items yet. Add your first item above!"

const createdLayout = "Jan 2, 2006 3:04 PM"

// Created renders the creation time in local time, or the raw server text
// when it does not parse.
func Created(it model.Item) string {
	if t, ok := it.CreatedTime(); ok {
		return "Created: " + t.Local().Format(createdLayout)
	}
	return "Created: " + it.CreatedAt
}

// ItemLines renders one item as title, optional wrapped description and
// creation line. width <= 0 disables wrapping.
func ItemLines(it model.Item, width int) []string {
	t := Current()
	title := it.Title
	if width > 0 {
		title = truncate.StringWithTail(title, uint(width), "...")
	}
	lines := []string{t.Title.Render(title)}
	if it.Description != "" {
		desc := it.Description
		if width > 0 {
			desc = wordwrap.String(desc, width)
		}
		lines = append(lines, strings.Split(desc, "\n")...)
	}
	lines = append(lines, t.Muted.Render(Created(it)))
	return lines
}

// ListLines is the non-interactive listing used by `items ls`.
func ListLines(items []model.Item, width int) []string {
	t := Current()
	header := fmt.Sprintf("%s  %s %d", t.Title.Render("Items Manager"), t.Accent.Render("Total"), len(items))
	lines := []string{header, ""}
	if len(items) == 0 {
		return append(lines, t.Muted.Render(EmptyMessage))
	}
	for i, it := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.Muted.Render(it.ID))
		lines = append(lines, ItemLines(it, width)...)
	}
	return lines
}
