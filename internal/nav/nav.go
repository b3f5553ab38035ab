// Package nav maps between typed navigation state and request URLs.
//
// Reads go URL -> state (ParseListState, ParseCharacterID); writes go
// state -> URL (ListState.Path, CharacterPath). Nothing else touches query strings.
package nav

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/me/rickdex/pkg/model"
)

// PageParam is the query parameter holding the list page number.
const PageParam = "page"

// ListState is the navigation state of the character list.
type ListState struct {
	Page int
}

// ParseListState reads the list state from query values. The page defaults to 1
// when absent, non-numeric or not positive. There is no upper bound.
func ParseListState(q url.Values) ListState {
	return ListState{Page: ParsePage(q.Get(PageParam))}
}

// ParsePage coerces a raw page parameter to a positive integer, defaulting to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Path returns the list URL for the state, e.g. "/?page=3".
func (s ListState) Path() string {
	return "/?" + s.Query().Encode()
}

// Query returns the state encoded as query values.
func (s ListState) Query() url.Values {
	return url.Values{PageParam: {strconv.Itoa(s.normalized().Page)}}
}

// ShareURL returns the absolute, shareable list URL under origin.
func (s ListState) ShareURL(origin string) string {
	return strings.TrimRight(origin, "/") + s.Path()
}

// Prev returns the state one page back.
func (s ListState) Prev() ListState {
	return ListState{Page: s.normalized().Page - 1}.normalized()
}

// Next returns the state one page forward.
func (s ListState) Next() ListState {
	return ListState{Page: s.normalized().Page + 1}
}

func (s ListState) normalized() ListState {
	if s.Page < 1 {
		return ListState{Page: 1}
	}
	return s
}

// CharacterPath returns the detail route for a character.
func CharacterPath(id int) string {
	return "/character/" + strconv.Itoa(id)
}

// ParseCharacterID parses the characterId route parameter.
func ParseCharacterID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid character id %q: %w", raw, err)
	}
	return id, nil
}

// Origin returns "<scheme>://<host>" for the request, honouring X-Forwarded-Proto
// and X-Forwarded-Host set by a reverse proxy.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(p, ",")[0]))
	}
	host := r.Host
	if h := r.Header.Get("X-Forwarded-Host"); h != "" {
		host = strings.TrimSpace(strings.Split(h, ",")[0])
	}
	return scheme + "://" + host
}

// Pager is the state of the list pagination controls for one page.
type Pager struct {
	Page     int
	Pages    int
	Count    int
	HasPrev  bool
	HasNext  bool
	PrevPath string
	NextPath string
}

// NewPager derives the controls from the page envelope: previous is enabled only
// when the envelope links a previous page, next only when it links a next page.
func NewPager(s ListState, info model.PageInfo) Pager {
	s = s.normalized()
	p := Pager{
		Page:    s.Page,
		Pages:   info.Pages,
		Count:   info.Count,
		HasPrev: info.HasPrev(),
		HasNext: info.HasNext(),
	}
	if p.HasPrev {
		p.PrevPath = s.Prev().Path()
	}
	if p.HasNext {
		p.NextPath = s.Next().Path()
	}
	return p
}
