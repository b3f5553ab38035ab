// Package ui serves the server-rendered character browser.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/me/rickdex/internal/directory"
)

const appTitle = "Rick & Morty Character Explorer"

// UI handles the web user interface.
type UI struct {
	dir    *directory.Service
	tmpl   *templateSet
	logger *slog.Logger
}

// New creates a new UI handler.
func New(dir *directory.Service, logger *slog.Logger) (*UI, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &UI{
		dir:    dir,
		tmpl:   tmpl,
		logger: logger.With("component", "ui"),
	}, nil
}

// Toast variants understood by the client script.
const (
	toastDefault     = "default"
	toastDestructive = "destructive"
)

type toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant"`
}

// setToast queues a toast for the client through the HX-Trigger header.
func (ui *UI) setToast(w http.ResponseWriter, t toast) {
	payload, err := json.Marshal(map[string]toast{"toast": t})
	if err != nil {
		ui.logger.Error("encode toast failed", "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

func (ui *UI) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	data["Lang"] = LocaleFromContext(r.Context()).String()
	if _, ok := data["Title"]; !ok {
		data["Title"] = appTitle
	}

	var buf bytes.Buffer
	if err := ui.tmpl.page(&buf, name, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderFragment renders a component for an htmx swap. Fragments always answer
// 200 since htmx does not swap error responses.
func (ui *UI) renderFragment(w http.ResponseWriter, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := ui.tmpl.fragment(&buf, name, data); err != nil {
		ui.logger.Error("fragment render failed", "fragment", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// HandleNotFound renders the not-found page for unknown routes.
func (ui *UI) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	ui.render(w, r, http.StatusNotFound, "error", map[string]any{
		"Title":   "Not Found - " + appTitle,
		"Heading": "404",
		"Message": "Oops! Page not found",
	})
}
