package ui

import (
	"net/http"

	"github.com/me/rickdex/internal/nav"
	"github.com/me/rickdex/internal/query"
	"github.com/me/rickdex/pkg/model"
)

func panelPath(s nav.ListState) string {
	return "/fragments/characters?" + s.Query().Encode()
}

func refreshPath(s nav.ListState) string {
	return "/characters/refresh?" + s.Query().Encode()
}

// HandleCharacterList renders the list page. A cached page renders inline; otherwise
// a skeleton loads the panel once the browser has the page.
func (ui *UI) HandleCharacterList(w http.ResponseWriter, r *http.Request) {
	state := nav.ParseListState(r.URL.Query())
	snap := ui.dir.PeekPage(state.Page)

	data := map[string]any{
		"PanelPath":   panelPath(state),
		"RefreshPath": refreshPath(state),
		"ShareURL":    state.ShareURL(nav.Origin(r)),
		"Fetching":    true,
	}

	if page, ok := query.Value[*model.CharacterPage](snap); ok && page != nil {
		panel, err := ui.listPanel(r, state, page, snap.Stale)
		if err != nil {
			ui.logger.Error("build character rows failed", "page", state.Page, "error", err)
		} else {
			data["Panel"] = panel
		}
	}

	ui.render(w, r, http.StatusOK, "characters/list", data)
}

// HandleCharacterPanel renders the table panel for one page.
func (ui *UI) HandleCharacterPanel(w http.ResponseWriter, r *http.Request) {
	state := nav.ParseListState(r.URL.Query())

	page, err := ui.dir.Page(r.Context(), state.Page)
	if err != nil {
		ui.logger.Warn("load characters failed", "page", state.Page, "error", err)
		// Keep showing what was last loaded, if anything. Only an explicit refresh
		// reports its failure.
		if cached, ok := query.Value[*model.CharacterPage](ui.dir.PeekPage(state.Page)); ok && cached != nil {
			ui.renderListPanel(w, r, state, cached)
			return
		}
		ui.renderFragment(w, "character_panel", ui.errorPanel(r, state))
		return
	}

	ui.renderListPanel(w, r, state, page)
}

// HandleCharacterRefresh refetches one page regardless of freshness.
func (ui *UI) HandleCharacterRefresh(w http.ResponseWriter, r *http.Request) {
	state := nav.ParseListState(r.URL.Query())

	page, err := ui.dir.RefreshPage(r.Context(), state.Page)
	if err != nil {
		ui.logger.Warn("refresh characters failed", "page", state.Page, "error", err)
		ui.setToast(w, refreshFailedToast())
		if cached, ok := query.Value[*model.CharacterPage](ui.dir.PeekPage(state.Page)); ok && cached != nil {
			ui.renderListPanel(w, r, state, cached)
			return
		}
		ui.renderFragment(w, "character_panel", ui.errorPanel(r, state))
		return
	}

	ui.logger.Info("characters refreshed", "page", state.Page)
	ui.setToast(w, toast{
		Title:       "Characters refreshed",
		Description: formatPageUpdated(state.Page, LocaleFromContext(r.Context())),
		Variant:     toastDefault,
	})
	ui.renderListPanel(w, r, state, page)
}

func refreshFailedToast() toast {
	return toast{
		Title:       "Refresh failed",
		Description: "Could not refresh character data",
		Variant:     toastDestructive,
	}
}

func (ui *UI) renderListPanel(w http.ResponseWriter, r *http.Request, state nav.ListState, page *model.CharacterPage) {
	panel, err := ui.listPanel(r, state, page, false)
	if err != nil {
		ui.logger.Error("build character rows failed", "page", state.Page, "error", err)
		ui.renderFragment(w, "character_panel", ui.errorPanel(r, state))
		return
	}
	ui.renderFragment(w, "character_panel", panel)
}

// listPanel builds the panel data for a loaded page. A stale panel asks the browser
// to revalidate it right away and shows the refresh overlay meanwhile.
func (ui *UI) listPanel(r *http.Request, state nav.ListState, page *model.CharacterPage, stale bool) (map[string]any, error) {
	rows, err := buildRows(page.Results, CharacterColumns)
	if err != nil {
		return nil, err
	}
	tag := LocaleFromContext(r.Context())
	pager := nav.NewPager(state, page.Info)

	panel := map[string]any{
		"State":       model.QueryStateSuccess,
		"Revalidate":  stale,
		"Fetching":    stale,
		"PanelPath":   panelPath(state),
		"RefreshPath": refreshPath(state),
		"ShareURL":    state.ShareURL(nav.Origin(r)),
		"Showing":     formatCount(len(page.Results), tag),
		"Total":       formatCount(page.Info.Count, tag),
		"Columns":     CharacterColumns,
		"Rows":        rows,
		"Pager":       pager,
	}
	if stale {
		panel["State"] = model.QueryStateRefreshing
	}
	if pager.HasPrev {
		panel["PrevPanelPath"] = panelPath(state.Prev())
	}
	if pager.HasNext {
		panel["NextPanelPath"] = panelPath(state.Next())
	}
	return panel, nil
}

func (ui *UI) errorPanel(r *http.Request, state nav.ListState) map[string]any {
	return map[string]any{
		"State":       model.QueryStateError,
		"Error":       true,
		"PanelPath":   panelPath(state),
		"RefreshPath": refreshPath(state),
		"ShareURL":    state.ShareURL(nav.Origin(r)),
	}
}
