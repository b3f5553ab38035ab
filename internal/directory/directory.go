// Package directory serves catalog reads through the query cache.
package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/me/rickdex/internal/query"
	"github.com/me/rickdex/internal/rickmorty"
	"github.com/me/rickdex/pkg/model"
)

// Query operation names.
const (
	OpCharacters = "characters"
	OpCharacter  = "character"
	OpEpisodes   = "episodes"
)

// PageKey is the cache key of a character page.
func PageKey(page int) query.Key {
	return query.NewKey(OpCharacters, page)
}

// CharacterKey is the cache key of a single character.
func CharacterKey(id int) query.Key {
	return query.NewKey(OpCharacter, id)
}

// EpisodesKey is the cache key of an episode batch.
func EpisodesKey(ids []int) query.Key {
	return query.NewKey(OpEpisodes, rickmorty.JoinIDs(ids))
}

// Service resolves characters and episodes through a shared cache.
type Service struct {
	catalog rickmorty.Catalog
	cache   *query.Cache
	logger  *slog.Logger
}

// New creates a Service.
func New(catalog rickmorty.Catalog, cache *query.Cache, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		cache:   cache,
		logger:  logger.With("component", "directory"),
	}
}

// Page returns a page of characters, from cache while fresh.
func (s *Service) Page(ctx context.Context, page int) (*model.CharacterPage, error) {
	return query.Get(ctx, s.cache, PageKey(page), s.pageFetcher(page))
}

// RefreshPage refetches a page regardless of freshness.
func (s *Service) RefreshPage(ctx context.Context, page int) (*model.CharacterPage, error) {
	return query.Refresh(ctx, s.cache, PageKey(page), s.pageFetcher(page))
}

// PeekPage reports the cached state of a page without fetching.
func (s *Service) PeekPage(page int) query.Snapshot {
	return s.cache.Peek(PageKey(page))
}

// Character returns a character. A missing record yields an error wrapping
// model.ErrNotFound.
func (s *Service) Character(ctx context.Context, id int) (*model.Character, error) {
	return query.Get(ctx, s.cache, CharacterKey(id), s.characterFetcher(id))
}

// RefreshCharacter refetches a character regardless of freshness.
func (s *Service) RefreshCharacter(ctx context.Context, id int) (*model.Character, error) {
	return query.Refresh(ctx, s.cache, CharacterKey(id), s.characterFetcher(id))
}

// PeekCharacter reports the cached state of a character without fetching.
func (s *Service) PeekCharacter(id int) query.Snapshot {
	return s.cache.Peek(CharacterKey(id))
}

// Episodes resolves an episode batch in a single catalog call. An empty id set
// returns nil without touching the cache or the catalog.
func (s *Service) Episodes(ctx context.Context, ids []int) ([]model.Episode, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return query.Get(ctx, s.cache, EpisodesKey(ids), func(ctx context.Context) ([]model.Episode, error) {
		return s.catalog.GetByIDs(ctx, ids)
	})
}

// PeekEpisodes reports the cached state of an episode batch without fetching.
func (s *Service) PeekEpisodes(ids []int) query.Snapshot {
	return s.cache.Peek(EpisodesKey(ids))
}

// CharacterEpisodes resolves the episodes referenced by a character.
func (s *Service) CharacterEpisodes(ctx context.Context, c *model.Character) ([]model.Episode, error) {
	return s.Episodes(ctx, c.EpisodeIDs())
}

func (s *Service) pageFetcher(page int) func(context.Context) (*model.CharacterPage, error) {
	return func(ctx context.Context) (*model.CharacterPage, error) {
		return s.catalog.GetPage(ctx, page)
	}
}

func (s *Service) characterFetcher(id int) func(context.Context) (*model.Character, error) {
	return func(ctx context.Context) (*model.Character, error) {
		c, err := s.catalog.GetByID(ctx, id)
		if rickmorty.IsNotFound(err) {
			return nil, fmt.Errorf("character %d: %w (%w)", id, model.ErrNotFound, err)
		}
		if err != nil {
			return nil, err
		}
		if c == nil || c.ID == 0 {
			return nil, fmt.Errorf("character %d: %w", id, model.ErrNotFound)
		}
		return c, nil
	}
}

// CachedQueries returns the number of keys held by the cache.
func (s *Service) CachedQueries() int {
	return s.cache.Len()
}
