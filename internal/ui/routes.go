package ui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed assets
var assets embed.FS

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(LocaleMiddleware)

		// Character list
		r.Get("/", ui.HandleCharacterList)
		r.Get("/fragments/characters", ui.HandleCharacterPanel)
		r.Post("/characters/refresh", ui.HandleCharacterRefresh)

		// Character detail
		r.Get("/character/{characterId}", ui.HandleCharacterDetail)
		r.Get("/fragments/character/{characterId}", ui.HandleCharacterDetailPanel)
	})
}

// StaticHandler returns an http.Handler that serves the embedded static assets
// under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
