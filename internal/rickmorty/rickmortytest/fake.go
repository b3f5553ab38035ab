// Package rickmortytest provides an in-memory catalog for tests.
package rickmortytest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/me/rickdex/internal/rickmorty"
	"github.com/me/rickdex/pkg/model"
)

// Call records one catalog operation.
type Call struct {
	Op   string // "GetPage", "GetByID" or "GetByIDs"
	Page int
	ID   int
	IDs  []int
}

// Catalog is an in-memory rickmorty.Catalog. Characters are paged PageSize at a time.
// Setting Err makes every subsequent call fail with it.
type Catalog struct {
	PageSize int

	mu         sync.Mutex
	characters []model.Character
	episodes   map[int]model.Episode
	calls      []Call
	err        error
}

var _ rickmorty.Catalog = (*Catalog)(nil)

// New creates a catalog holding the given records.
func New(characters []model.Character, episodes []model.Episode) *Catalog {
	eps := make(map[int]model.Episode, len(episodes))
	for _, e := range episodes {
		eps[e.ID] = e
	}
	return &Catalog{PageSize: 20, characters: characters, episodes: eps}
}

// Seed creates a catalog of n generated characters, each referencing episodes 1 and 28.
func Seed(n int) *Catalog {
	chars := make([]model.Character, n)
	for i := range chars {
		id := i + 1
		chars[i] = model.Character{
			ID:       id,
			Name:     fmt.Sprintf("Character %d", id),
			Status:   model.StatusAlive,
			Species:  "Human",
			Gender:   "Male",
			Origin:   model.LocationRef{Name: "Earth (C-137)"},
			Location: model.LocationRef{Name: "Citadel of Ricks"},
			Image:    fmt.Sprintf("https://rickandmortyapi.com/api/character/avatar/%d.jpeg", id),
			Episode: []string{
				"https://rickandmortyapi.com/api/episode/1",
				"https://rickandmortyapi.com/api/episode/28",
			},
		}
	}
	return New(chars, []model.Episode{
		{ID: 1, Name: "Pilot", Code: "S01E01", AirDate: "December 2, 2013"},
		{ID: 28, Name: "The Ricklantis Mixup", Code: "S03E07", AirDate: "September 10, 2017"},
	})
}

// SetErr makes every subsequent call fail with err; nil restores normal behaviour.
func (c *Catalog) SetErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Calls returns the operations performed so far.
func (c *Catalog) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallsTo returns the recorded calls of one operation.
func (c *Catalog) CallsTo(op string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// GetPage implements rickmorty.Catalog.
func (c *Catalog) GetPage(ctx context.Context, page int) (*model.CharacterPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "GetPage", Page: page})
	if c.err != nil {
		return nil, c.err
	}

	if page < 1 {
		page = 1
	}
	pages := (len(c.characters) + c.PageSize - 1) / c.PageSize
	if page > pages {
		return nil, notFound("characters")
	}
	start := (page - 1) * c.PageSize
	end := min(start+c.PageSize, len(c.characters))

	info := model.PageInfo{Count: len(c.characters), Pages: pages}
	if page > 1 {
		prev := fmt.Sprintf("https://rickandmortyapi.com/api/character?page=%d", page-1)
		info.Prev = &prev
	}
	if page < pages {
		next := fmt.Sprintf("https://rickandmortyapi.com/api/character?page=%d", page+1)
		info.Next = &next
	}
	return &model.CharacterPage{
		Info:    info,
		Results: append([]model.Character(nil), c.characters[start:end]...),
	}, nil
}

// GetByID implements rickmorty.Catalog.
func (c *Catalog) GetByID(ctx context.Context, id int) (*model.Character, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "GetByID", ID: id})
	if c.err != nil {
		return nil, c.err
	}
	for _, ch := range c.characters {
		if ch.ID == id {
			ch := ch
			return &ch, nil
		}
	}
	return nil, notFound("character")
}

// GetByIDs implements rickmorty.Catalog.
func (c *Catalog) GetByIDs(ctx context.Context, ids []int) ([]model.Episode, error) {
	if len(ids) == 0 {
		return []model.Episode{}, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "GetByIDs", IDs: append([]int(nil), ids...)})
	if c.err != nil {
		return nil, c.err
	}
	out := make([]model.Episode, 0, len(ids))
	for _, id := range ids {
		if e, ok := c.episodes[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func notFound(op string) error {
	return &rickmorty.FetchError{
		Op:         op,
		StatusCode: http.StatusNotFound,
		Status:     http.StatusText(http.StatusNotFound),
	}
}
