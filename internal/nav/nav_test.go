package nav

import (
	"crypto/tls"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/rickdex/pkg/model"
)

func TestParseListState(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=", 1},
		{"page=2", 2},
		{"page=42", 42},
		{"page=9999", 9999},
		{"page=abc", 1},
		{"page=0", 1},
		{"page=-3", 1},
		{"page=2.5", 1},
		{"page=%207%20", 7},
	}
	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ParseListState(q).Page, "query %q", tt.query)
	}
}

func TestListState_RoundTrip(t *testing.T) {
	for _, page := range []int{1, 2, 17} {
		s := ListState{Page: page}
		u, err := url.Parse(s.Path())
		require.NoError(t, err)
		assert.Equal(t, "/", u.Path)
		assert.Equal(t, s, ParseListState(u.Query()))
	}
}

func TestListState_Paths(t *testing.T) {
	assert.Equal(t, "/?page=3", ListState{Page: 3}.Path())
	assert.Equal(t, "/?page=1", ListState{}.Path())
	assert.Equal(t, ListState{Page: 1}, ListState{Page: 1}.Prev())
	assert.Equal(t, ListState{Page: 4}, ListState{Page: 3}.Next())
}

func TestListState_ShareURL(t *testing.T) {
	assert.Equal(t, "https://rickdex.example/?page=4", ListState{Page: 4}.ShareURL("https://rickdex.example/"))
	assert.Equal(t, "http://localhost:8080/?page=1", ListState{Page: 1}.ShareURL("http://localhost:8080"))
}

func TestCharacterPath(t *testing.T) {
	assert.Equal(t, "/character/5", CharacterPath(5))

	id, err := ParseCharacterID("5")
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	_, err = ParseCharacterID("rick")
	assert.Error(t, err)
}

func TestOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "http://rickdex.local:8080/?page=2", nil)
	assert.Equal(t, "http://rickdex.local:8080", Origin(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://rickdex.local:8080", Origin(r))

	r = httptest.NewRequest("GET", "http://internal:8080/", nil)
	r.Header.Set("X-Forwarded-Proto", "https, http")
	r.Header.Set("X-Forwarded-Host", "rickdex.example")
	assert.Equal(t, "https://rickdex.example", Origin(r))
}

func TestNewPager(t *testing.T) {
	next := "https://rickandmortyapi.com/api/character?page=2"
	prev := "https://rickandmortyapi.com/api/character?page=1"

	first := NewPager(ListState{Page: 1}, model.PageInfo{Count: 826, Pages: 42, Next: &next})
	assert.False(t, first.HasPrev, "previous disabled without prev link")
	assert.True(t, first.HasNext, "next enabled with next link")
	assert.Empty(t, first.PrevPath)
	assert.Equal(t, "/?page=2", first.NextPath)

	last := NewPager(ListState{Page: 42}, model.PageInfo{Count: 826, Pages: 42, Prev: &prev})
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
	assert.Equal(t, "/?page=41", last.PrevPath)
	assert.Empty(t, last.NextPath)

	only := NewPager(ListState{Page: 1}, model.PageInfo{Count: 3, Pages: 1})
	assert.False(t, only.HasPrev)
	assert.False(t, only.HasNext)
}
