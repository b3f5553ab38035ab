package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/rickdex/internal/directory"
	"github.com/me/rickdex/internal/logging"
	"github.com/me/rickdex/internal/query"
	"github.com/me/rickdex/internal/rickmorty/rickmortytest"
	"github.com/me/rickdex/pkg/model"
)

func newTestUI(t *testing.T, cat *rickmortytest.Catalog) (http.Handler, *directory.Service) {
	t.Helper()
	dir := directory.New(cat, query.New(query.DefaultConfig(), logging.Discard()), logging.Discard())
	ui, err := New(dir, logging.Discard())
	require.NoError(t, err)

	r := chi.NewRouter()
	ui.RegisterRoutes(r)
	return r, dir
}

func doRequest(t *testing.T, h http.Handler, method, target string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestCharacterList_SkeletonWhenUncached(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, _ := newTestUI(t, cat)

	resp, body := doRequest(t, h, http.MethodGet, "/?page=2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `hx-get="/fragments/characters?page=2"`)
	assert.Contains(t, body, `data-state="loading"`)
	assert.Contains(t, body, "Rick &amp; Morty Character Explorer")
	assert.Empty(t, cat.Calls(), "the full page must not fetch when nothing is cached")
}

func TestCharacterList_InlineWhenCached(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, _ := newTestUI(t, cat)

	doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	resp, body := doRequest(t, h, http.MethodGet, "/?page=1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="character-1"`)
	assert.Contains(t, body, `data-state="success"`)
	assert.NotContains(t, body, `data-state="loading"`)
	assert.Len(t, cat.CallsTo("GetPage"), 1)
}

func TestCharacterList_InvalidPageFallsBackToFirst(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, _ := newTestUI(t, cat)

	for _, target := range []string{"/?page=abc", "/?page=0", "/?page=-3", "/"} {
		_, body := doRequest(t, h, http.MethodGet, target, nil)
		assert.Contains(t, body, `hx-get="/fragments/characters?page=1"`, target)
	}
}

func TestCharacterPanel_RowsAndPager(t *testing.T) {
	cat := rickmortytest.Seed(10)
	cat.PageSize = 4
	h, _ := newTestUI(t, cat)

	resp, body := doRequest(t, h, http.MethodGet, "/fragments/characters?page=2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, body, `id="character-5"`)
	assert.Contains(t, body, `hx-get="/character/5"`)
	assert.NotContains(t, body, `href="/character/5"`)
	assert.NotContains(t, body, `id="character-4"`)
	assert.Contains(t, body, "Showing 4 of 10 characters")
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, `hx-push-url="/?page=1"`)
	assert.Contains(t, body, `hx-push-url="/?page=3"`)
	assert.Contains(t, body, `data-share-url="http://example.com/?page=2"`)

	calls := cat.CallsTo("GetPage")
	require.Len(t, calls, 1)
	assert.Equal(t, 2, calls[0].Page)
}

func TestCharacterPanel_PagerBounds(t *testing.T) {
	cat := rickmortytest.Seed(10)
	cat.PageSize = 4
	h, _ := newTestUI(t, cat)

	_, first := doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	assert.Contains(t, first, `id="page-prev" disabled`)
	assert.NotContains(t, first, `id="page-next" disabled`)

	_, last := doRequest(t, h, http.MethodGet, "/fragments/characters?page=3", nil)
	assert.NotContains(t, last, `id="page-prev" disabled`)
	assert.Contains(t, last, `id="page-next" disabled`)
	assert.Contains(t, last, "Showing 2 of 10 characters")
}

func TestCharacterPanel_ErrorWhenNothingCached(t *testing.T) {
	cat := rickmortytest.Seed(10)
	cat.SetErr(errors.New("connection refused"))
	h, _ := newTestUI(t, cat)

	resp, body := doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Failed to load characters")
	assert.Contains(t, body, "Try Again")
	assert.Contains(t, body, `data-state="error"`)
}

func TestCharacterRefresh_Success(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, _ := newTestUI(t, cat)

	doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	resp, body := doRequest(t, h, http.MethodPost, "/characters/refresh?page=1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="character-1"`)
	trigger := resp.Header.Get("HX-Trigger")
	assert.Contains(t, trigger, "Characters refreshed")
	assert.Contains(t, trigger, "Page 1 has been updated")
	assert.Len(t, cat.CallsTo("GetPage"), 2, "refresh must refetch a fresh page")
}

func TestCharacterRefresh_FailureKeepsData(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, _ := newTestUI(t, cat)

	doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	cat.SetErr(errors.New("connection refused"))
	resp, body := doRequest(t, h, http.MethodPost, "/characters/refresh?page=1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="character-1"`)
	assert.NotContains(t, body, "Failed to load characters")
	trigger := resp.Header.Get("HX-Trigger")
	assert.Contains(t, trigger, "Refresh failed")
	assert.Contains(t, trigger, "Could not refresh character data")
	assert.Contains(t, trigger, toastDestructive)
}

func TestCharacterDetailPanel_LoadsEpisodesInOneCall(t *testing.T) {
	cat := rickmortytest.Seed(3)
	h, _ := newTestUI(t, cat)

	resp, body := doRequest(t, h, http.MethodGet, "/fragments/character/2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Character 2")
	assert.Contains(t, body, "Earth (C-137)")
	assert.Contains(t, body, "Citadel of Ricks")
	assert.Contains(t, body, "Episodes (2)")
	assert.Contains(t, body, "S01E01")
	assert.Contains(t, body, "The Ricklantis Mixup")

	calls := cat.CallsTo("GetByIDs")
	require.Len(t, calls, 1)
	assert.Equal(t, []int{1, 28}, calls[0].IDs)
}

func TestCharacterDetail_InlineWhenCached(t *testing.T) {
	cat := rickmortytest.Seed(3)
	h, _ := newTestUI(t, cat)

	doRequest(t, h, http.MethodGet, "/fragments/character/2", nil)
	resp, body := doRequest(t, h, http.MethodGet, "/character/2", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Character 2 - Rick &amp; Morty Character Explorer</title>")
	assert.Contains(t, body, "Episodes (2)")
	assert.Len(t, cat.CallsTo("GetByID"), 1)
	assert.Len(t, cat.CallsTo("GetByIDs"), 1)
}

func TestCharacterDetail_SkeletonWhenUncached(t *testing.T) {
	cat := rickmortytest.Seed(3)
	h, _ := newTestUI(t, cat)

	resp, body := doRequest(t, h, http.MethodGet, "/character/3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `hx-get="/fragments/character/3"`)
	assert.Empty(t, cat.Calls())
}

func TestCharacterDetailPanel_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"absent record", "/fragments/character/999"},
		{"non-integer id", "/fragments/character/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestUI(t, rickmortytest.Seed(3))

			resp, body := doRequest(t, h, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "Character not found")
			assert.Contains(t, body, `href="/"`)
		})
	}
}

func TestCharacterDetailPanel_LookupErrorIsNotFound(t *testing.T) {
	cat := rickmortytest.Seed(3)
	cat.SetErr(errors.New("connection refused"))
	h, _ := newTestUI(t, cat)

	_, body := doRequest(t, h, http.MethodGet, "/fragments/character/1", nil)
	assert.Contains(t, body, "Character not found")
}

func TestCharacterDetail_InvalidIDIsNotFound(t *testing.T) {
	h, _ := newTestUI(t, rickmortytest.Seed(3))

	resp, body := doRequest(t, h, http.MethodGet, "/character/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Character not found")
}

func TestCharacterDetailPanel_EpisodeFailureOmitsSection(t *testing.T) {
	cat := rickmortytest.Seed(3)
	h, dir := newTestUI(t, cat)

	_, err := dir.Character(context.Background(), 1)
	require.NoError(t, err)
	cat.SetErr(errors.New("connection refused"))

	_, body := doRequest(t, h, http.MethodGet, "/fragments/character/1", nil)
	assert.Contains(t, body, "Character 1")
	assert.NotContains(t, body, "Episodes (")
	assert.NotContains(t, body, "Character not found")
}

func TestCharacterDetailPanel_LocalizedCreatedDate(t *testing.T) {
	created := time.Date(2017, time.November, 4, 18, 48, 46, 0, time.UTC)
	cat := rickmortytest.New([]model.Character{{
		ID:      1,
		Name:    "Rick Sanchez",
		Status:  model.StatusAlive,
		Species: "Human",
		Created: created,
	}}, nil)
	h, _ := newTestUI(t, cat)

	tests := []struct {
		accept string
		want   string
	}{
		{"en-US,en;q=0.9", "11/4/2017"},
		{"de-DE,de;q=0.9", "4.11.2017"},
		{"ja", "2017/11/4"},
		{"", "11/4/2017"},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			_, body := doRequest(t, h, http.MethodGet, "/fragments/character/1", map[string]string{"Accept-Language": tt.accept})
			assert.Contains(t, body, tt.want)
		})
	}

	// No episodes referenced, so no batch call.
	assert.Empty(t, cat.CallsTo("GetByIDs"))
}

func TestUnknownEpisodeRefsAreIgnored(t *testing.T) {
	cat := rickmortytest.New([]model.Character{{
		ID:      7,
		Name:    "Abradolf Lincler",
		Status:  model.StatusUnknown,
		Episode: []string{"https://rickandmortyapi.com/api/episode/10", "not-a-url", "https://rickandmortyapi.com/api/episode/"},
	}}, []model.Episode{{ID: 10, Name: "Close Rick-counters of the Rick Kind", Code: "S01E10"}})
	h, _ := newTestUI(t, cat)

	_, body := doRequest(t, h, http.MethodGet, "/fragments/character/7", nil)
	assert.Contains(t, body, "Episodes (1)")

	calls := cat.CallsTo("GetByIDs")
	require.Len(t, calls, 1)
	assert.Equal(t, []int{10}, calls[0].IDs)
}

func TestStaticHandler(t *testing.T) {
	h := StaticHandler()

	for _, path := range []string{"/static/js/app.js", "/static/css/app.css"} {
		resp, body := doRequest(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, strings.TrimSpace(body), path)
	}
}

func TestRowActivationLoadsCharacter(t *testing.T) {
	cat := rickmortytest.Seed(10)
	cat.PageSize = 4
	h, _ := newTestUI(t, cat)

	_, list := doRequest(t, h, http.MethodGet, "/fragments/characters?page=2", nil)
	require.Contains(t, list, `hx-get="/character/5" hx-target="body" hx-push-url="true"`)

	// The row swaps in the detail page, which loads its panel fragment.
	_, page := doRequest(t, h, http.MethodGet, "/character/5", map[string]string{"HX-Request": "true"})
	require.Contains(t, page, `hx-get="/fragments/character/5"`)
	_, panel := doRequest(t, h, http.MethodGet, "/fragments/character/5", nil)
	assert.Contains(t, panel, "Character 5")

	calls := cat.CallsTo("GetByID")
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].ID)
}

func TestCharacterDetail_RefetchesAfterFailedLookup(t *testing.T) {
	cat := rickmortytest.Seed(3)
	h, _ := newTestUI(t, cat)

	cat.SetErr(errors.New("connection refused"))
	_, body := doRequest(t, h, http.MethodGet, "/fragments/character/1", nil)
	require.Contains(t, body, "Character not found")
	require.Len(t, cat.CallsTo("GetByID"), 1)

	cat.SetErr(nil)
	resp, page := doRequest(t, h, http.MethodGet, "/character/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, `hx-get="/fragments/character/1"`)
	assert.NotContains(t, page, "Character not found")

	_, panel := doRequest(t, h, http.MethodGet, "/fragments/character/1", nil)
	assert.Contains(t, panel, "Character 1")
	assert.Len(t, cat.CallsTo("GetByID"), 2)
}

func TestCharacterPanel_BackgroundFailureKeepsDataWithoutToast(t *testing.T) {
	cat := rickmortytest.Seed(10)
	h, dir := newTestUI(t, cat)

	_, err := dir.Page(context.Background(), 1)
	require.NoError(t, err)
	cat.SetErr(errors.New("connection refused"))
	// Make the cached page stale so the panel load goes upstream.
	_, err = dir.RefreshPage(context.Background(), 1)
	require.Error(t, err)

	resp, body := doRequest(t, h, http.MethodGet, "/fragments/characters?page=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="character-1"`)
	assert.Empty(t, resp.Header.Get("HX-Trigger"))
	assert.Len(t, cat.CallsTo("GetPage"), 3)
}
