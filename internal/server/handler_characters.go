package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/rickdex/internal/nav"
	"github.com/me/rickdex/internal/rickmorty"
	"github.com/me/rickdex/pkg/model"
)

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	page := 1
	if raw := r.URL.Query().Get(nav.PageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("page must be a positive integer, got "+strconv.Quote(raw)))
			return
		}
		page = n
	}

	result, err := s.dir.Page(r.Context(), page)
	if err != nil {
		s.writeCatalogError(w, reqID, "page", strconv.Itoa(page), err)
		return
	}

	writePage(w, reqID, page, result)
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id, ok := s.characterID(w, r, reqID)
	if !ok {
		return
	}

	ch, err := s.dir.Character(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, reqID, "character", strconv.Itoa(id), err)
		return
	}
	writeData(w, reqID, ch)
}

func (s *Server) handleGetCharacterEpisodes(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id, ok := s.characterID(w, r, reqID)
	if !ok {
		return
	}

	ch, err := s.dir.Character(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, reqID, "character", strconv.Itoa(id), err)
		return
	}

	episodes, err := s.dir.CharacterEpisodes(r.Context(), ch)
	if err != nil {
		s.writeCatalogError(w, reqID, "episodes", rickmorty.JoinIDs(ch.EpisodeIDs()), err)
		return
	}
	writeData(w, reqID, orEmpty(episodes))
}

func (s *Server) characterID(w http.ResponseWriter, r *http.Request, reqID string) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := nav.ParseCharacterID(raw)
	if err != nil || id < 1 {
		writeError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("character id must be a positive integer, got "+strconv.Quote(raw)))
		return 0, false
	}
	return id, true
}

// writeCatalogError maps a catalog failure to NOT_FOUND or UPSTREAM_ERROR.
func (s *Server) writeCatalogError(w http.ResponseWriter, reqID, resource, id string, err error) {
	if errors.Is(err, model.ErrNotFound) || rickmorty.IsNotFound(err) {
		writeError(w, reqID, http.StatusNotFound, model.NewNotFoundError(resource, id))
		return
	}
	s.logger.Warn("catalog request failed", "resource", resource, "id", id, "error", err, "request_id", reqID)
	writeError(w, reqID, http.StatusBadGateway, model.NewUpstreamError(err))
}
