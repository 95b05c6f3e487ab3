package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/items/internal/model"
)

// ErrNotFound is returned when no item has the given id.
var ErrNotFound = errors.New("item not found")

// Store is an in-memory item table. Safe for concurrent use.
// Nothing survives a restart; it only backs local development and tests.
type Store struct {
	mu    sync.RWMutex
	items map[string]model.Item
	order []string // creation order, oldest first
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]model.Item),
		now:   time.Now,
	}
}

// List returns every item, newest first.
func (s *Store) List() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Item, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.items[s.order[i]])
	}
	return out
}

func (s *Store) Create(dto model.CreateItemDto) (model.Item, error) {
	if err := dto.Validate(); err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.stamp()
	it := model.Item{
		ID:        uuid.New().String(),
		Title:     dto.Title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if dto.Description != nil {
		it.Description = *dto.Description
	}
	s.items[it.ID] = it
	s.order = append(s.order, it.ID)
	return it, nil
}

// Update applies the fields present in dto and bumps updated_at.
func (s *Store) Update(id string, dto model.UpdateItemDto) (model.Item, error) {
	if dto.Title != nil {
		if err := (model.CreateItemDto{Title: *dto.Title}).Validate(); err != nil {
			return model.Item{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return model.Item{}, ErrNotFound
	}
	if dto.Title != nil {
		it.Title = *dto.Title
	}
	if dto.Description != nil {
		it.Description = *dto.Description
	}
	it.UpdatedAt = s.stamp()
	s.items[id] = it
	return it, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) stamp() string { return s.now().UTC().Format(time.RFC3339Nano) }
