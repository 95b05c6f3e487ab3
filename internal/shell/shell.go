// Package shell owns the client-side collection of items and reconciles it
// with the results of API calls.
//
// A Shell is not safe for concurrent use. It is owned by a single goroutine
// (the bubbletea update loop, or a CLI command), and network calls that run
// elsewhere hand their results back to that goroutine through the reconcile
// methods: Loaded, Created, Updated and Deleted.
package shell

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/model"
)

// API is the subset of the items client the shell drives.
type API interface {
	GetItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, dto model.CreateItemDto) (model.Item, error)
	UpdateItem(ctx context.Context, id string, dto model.UpdateItemDto) (model.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Banner texts. Only the most recent failure is shown.
const (
	ErrLoad   = "Failed to load items"
	ErrCreate = "Failed to create item"
	ErrUpdate = "Failed to update item"
	ErrDelete = "Failed to delete item"
)

type Shell struct {
	api     API
	log     zerolog.Logger
	items   []model.Item
	loading bool
	err     string
}

// New returns a shell in the loading state with an empty collection.
func New(c API, logger zerolog.Logger) *Shell {
	return &Shell{
		api:     c,
		log:     logger,
		items:   []model.Item{},
		loading: true,
	}
}

func (s *Shell) API() API { return s.api }

// Items returns a copy of the collection in display order.
func (s *Shell) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Shell) Loading() bool { return s.loading }

// Error is the banner text, empty when there is nothing to show.
func (s *Shell) Error() string { return s.err }

func (s *Shell) Load(ctx context.Context) {
	s.BeginLoad()
	items, err := s.api.GetItems(ctx)
	s.Loaded(items, err)
}

func (s *Shell) Create(ctx context.Context, dto model.CreateItemDto) {
	it, err := s.api.CreateItem(ctx, dto)
	s.Created(it, err)
}

func (s *Shell) Update(ctx context.Context, id string, dto model.UpdateItemDto) {
	it, err := s.api.UpdateItem(ctx, id, dto)
	s.Updated(id, it, err)
}

func (s *Shell) Delete(ctx context.Context, id string) {
	err := s.api.DeleteItem(ctx, id)
	s.Deleted(id, err)
}

// BeginLoad clears the banner. It is the only thing that does.
func (s *Shell) BeginLoad() {
	s.err = ""
}

// Loaded replaces the collection on success. The loading flag is cleared
// either way.
func (s *Shell) Loaded(items []model.Item, err error) {
	defer func() { s.loading = false }()
	if err != nil {
		s.fail(ErrLoad, "load", err)
		return
	}
	s.items = dedupe(items)
}

// Created puts the new item first.
func (s *Shell) Created(it model.Item, err error) {
	if err != nil {
		s.fail(ErrCreate, "create", err)
		return
	}
	next := make([]model.Item, 0, len(s.items)+1)
	next = append(next, it)
	for _, cur := range s.items {
		if cur.ID != it.ID {
			next = append(next, cur)
		}
	}
	s.items = next
}

// Updated swaps in the server's copy of id, keeping its position.
func (s *Shell) Updated(id string, it model.Item, err error) {
	if err != nil {
		s.fail(ErrUpdate, "update", err)
		return
	}
	next := make([]model.Item, len(s.items))
	for i, cur := range s.items {
		if cur.ID == id {
			next[i] = it
		} else {
			next[i] = cur
		}
	}
	s.items = next
}

// Deleted drops id. An id that is not present leaves the list as it is.
func (s *Shell) Deleted(id string, err error) {
	if err != nil {
		s.fail(ErrDelete, "delete", err)
		return
	}
	next := make([]model.Item, 0, len(s.items))
	for _, cur := range s.items {
		if cur.ID != id {
			next = append(next, cur)
		}
	}
	s.items = next
}

func (s *Shell) fail(banner, op string, err error) {
	s.err = banner
	ev := s.log.Error().Err(err).Str("op", op)
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		ev = ev.Int("status", apiErr.StatusCode).Str("detail", apiErr.Detail())
	}
	ev.Msg(banner)
}

// dedupe keeps the first occurrence of each id.
func dedupe(items []model.Item) []model.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
