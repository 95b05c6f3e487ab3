package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/items/internal/model"
)

const testToken = "dev-token"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(NewStore(), zerolog.Nop(), Options{Token: testToken, RateLimitRPS: 1000, RateLimitBurst: 1000})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestCreateAndList(t *testing.T) {
	h := newTestHandler(t)

	resp := doJSON(t, h, http.MethodPost, "/items", model.CreateItemDto{Title: "first"})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	var first model.Item
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "first", first.Title)
	assert.Equal(t, "", first.Description)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	resp = doJSON(t, h, http.MethodPost, "/items", model.CreateItemDto{Title: "second", Description: model.Ptr("d")})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, h, http.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var items []model.Item
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, "d", items[0].Description)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListEmptyIsArray(t *testing.T) {
	resp := doJSON(t, newTestHandler(t), http.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	resp := doJSON(t, newTestHandler(t), http.MethodPost, "/items", model.CreateItemDto{Title: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateRejectsInvalidJSON(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdatePartial(t *testing.T) {
	h := newTestHandler(t)
	resp := doJSON(t, h, http.MethodPost, "/items", model.CreateItemDto{Title: "t", Description: model.Ptr("keep")})
	var created model.Item
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = doJSON(t, h, http.MethodPut, "/items/"+created.ID, model.UpdateItemDto{Title: model.Ptr("t2")})
	require.Equal(t, http.StatusOK, resp.Code)
	var updated model.Item
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, "keep", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	h := newTestHandler(t)
	resp := doJSON(t, h, http.MethodPut, "/items/nope", model.UpdateItemDto{Title: model.Ptr("x")})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(t, h, http.MethodDelete, "/items/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDelete(t *testing.T) {
	h := newTestHandler(t)
	resp := doJSON(t, h, http.MethodPost, "/items", model.CreateItemDto{Title: "gone"})
	var created model.Item
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = doJSON(t, h, http.MethodDelete, "/items/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Empty(t, resp.Body.String())

	resp = doJSON(t, h, http.MethodGet, "/items", nil)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestRequiresBearerToken(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRateLimit(t *testing.T) {
	h := NewHandler(NewStore(), zerolog.Nop(), Options{RateLimitRPS: 1, RateLimitBurst: 1})

	first := doJSON(t, h, http.MethodGet, "/items", nil)
	second := doJSON(t, h, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
