package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemDtoValidate(t *testing.T) {
	assert.NoError(t, CreateItemDto{Title: "a"}.Validate())
	assert.ErrorIs(t, CreateItemDto{Title: ""}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, CreateItemDto{Title: " \t"}.Validate(), ErrEmptyTitle)
}

func TestDtoPresence(t *testing.T) {
	b, err := json.Marshal(CreateItemDto{Title: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a"}`, string(b))

	b, err = json.Marshal(UpdateItemDto{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(UpdateItemDto{Title: Ptr("t"), Description: Ptr("")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":""}`, string(b))
}

func TestCreatedTime(t *testing.T) {
	got, ok := Item{CreatedAt: "2024-05-01T10:00:00.123456+00:00"}.CreatedTime()
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC)))

	_, ok = Item{CreatedAt: "not a time"}.CreatedTime()
	assert.False(t, ok)
}
