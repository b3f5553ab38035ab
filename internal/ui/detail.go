package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/rickdex/internal/nav"
	"github.com/me/rickdex/internal/query"
	"github.com/me/rickdex/pkg/model"
)

func detailPanelPath(rawID string) string {
	return "/fragments/character/" + rawID
}

// HandleCharacterDetail renders the detail page for one character.
func (ui *UI) HandleCharacterDetail(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "characterId")
	id, err := nav.ParseCharacterID(rawID)
	if err != nil {
		ui.logger.Debug("invalid character id", "id", rawID, "error", err)
		ui.render(w, r, http.StatusNotFound, "characters/detail", map[string]any{
			"Title": "Character not found - " + appTitle,
			"Panel": notFoundPanel(),
		})
		return
	}

	data := map[string]any{
		"PanelPath": detailPanelPath(strconv.Itoa(id)),
	}

	snap := ui.dir.PeekCharacter(id)
	if ch, ok := query.Value[*model.Character](snap); ok && ch != nil {
		episodes, episodesStale := ui.cachedEpisodes(ch)
		stale := snap.Stale || episodesStale
		data["Title"] = ch.Name + " - " + appTitle
		data["Panel"] = ui.detailPanel(r, id, ch, episodes, stale)
	}
	// Without a value, including after a failed lookup, the skeleton loads the
	// panel fragment, which fetches again.

	ui.render(w, r, http.StatusOK, "characters/detail", data)
}

// HandleCharacterDetailPanel renders the detail panel for one character. Any lookup
// failure renders the not-found panel; an episode failure only drops the episode list.
func (ui *UI) HandleCharacterDetailPanel(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "characterId")
	id, err := nav.ParseCharacterID(rawID)
	if err != nil {
		ui.renderFragment(w, "detail_panel", notFoundPanel())
		return
	}

	ch, err := ui.dir.Character(r.Context(), id)
	if err != nil {
		ui.logger.Warn("load character failed", "id", id, "error", err)
		ui.renderFragment(w, "detail_panel", notFoundPanel())
		return
	}

	episodes, err := ui.dir.CharacterEpisodes(r.Context(), ch)
	if err != nil {
		ui.logger.Warn("load episodes failed", "id", id, "error", err)
		episodes = nil
	}

	ui.renderFragment(w, "detail_panel", ui.detailPanel(r, id, ch, episodes, false))
}

// cachedEpisodes returns the cached episodes of ch and whether they need loading.
func (ui *UI) cachedEpisodes(ch *model.Character) ([]model.Episode, bool) {
	ids := ch.EpisodeIDs()
	if len(ids) == 0 {
		return nil, false
	}
	snap := ui.dir.PeekEpisodes(ids)
	episodes, ok := query.Value[[]model.Episode](snap)
	if !ok {
		return nil, true
	}
	return episodes, snap.Stale
}

func (ui *UI) detailPanel(r *http.Request, id int, ch *model.Character, episodes []model.Episode, stale bool) map[string]any {
	state := model.QueryStateSuccess
	if stale {
		state = model.QueryStateRefreshing
	}
	return map[string]any{
		"State":      state,
		"Revalidate": stale,
		"PanelPath":  detailPanelPath(strconv.Itoa(id)),
		"Character":  ch,
		"Created":    formatLocalDate(ch.Created, LocaleFromContext(r.Context())),
		"Episodes":   episodes,
	}
}

func notFoundPanel() map[string]any {
	return map[string]any{
		"State":    model.QueryStateError,
		"NotFound": true,
	}
}
