package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/items/internal/model"
)

func TestCreated(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	it := model.Item{CreatedAt: ts.Format(time.RFC3339)}
	assert.Equal(t, "Created: "+ts.Local().Format(createdLayout), Created(it))

	assert.Equal(t, "Created: yesterday", Created(model.Item{CreatedAt: "yesterday"}))
}

func TestListLinesEmpty(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	out := strings.Join(ListLines(nil, 40), "\n")
	assert.Contains(t, out, "No items yet")
	assert.Contains(t, out, "Total 0")
}

func TestItemLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	it := model.Item{ID: "1", Title: strings.Repeat("x", 50), Description: "one two three four", CreatedAt: "raw"}
	lines := ItemLines(it, 10)
	assert.Equal(t, "xxxxxxx...", lines[0])
	assert.Equal(t, "Created: raw", lines[len(lines)-1])
	assert.Greater(t, len(lines), 3, "description should wrap")

	lines = ItemLines(model.Item{Title: "t", CreatedAt: "raw"}, 0)
	assert.Equal(t, []string{"t", "Created: raw"}, lines)
}

func TestOKFail(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "Failed to create item")
	assert.Equal(t, "ok added\nerror: Failed to create item\n", buf.String())
}

func TestPanelFrames(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	out := Panel([]string{"a", "bb"})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
}
