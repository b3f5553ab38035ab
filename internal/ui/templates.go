package ui

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/me/rickdex/internal/nav"
	"github.com/me/rickdex/pkg/model"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"statusColor": func(s model.CharacterStatus) string {
		switch s {
		case model.StatusAlive:
			return "bg-green-100 text-green-800"
		case model.StatusDead:
			return "bg-red-100 text-red-800"
		default:
			return "bg-gray-100 text-gray-800"
		}
	},
	"seq": func(n int) []int {
		result := make([]int, n)
		for i := range result {
			result[i] = i
		}
		return result
	},
}

func characterPath(id int) string {
	return nav.CharacterPath(id)
}

// templateSet holds every page parsed against the shared layout and components.
type templateSet struct {
	pages map[string]*template.Template
}

func parseTemplates() (*templateSet, error) {
	set := &templateSet{pages: make(map[string]*template.Template)}

	layout, ok := templates["layout"]
	if !ok {
		return nil, fmt.Errorf("layout template not found")
	}

	for name, content := range templates {
		if name == "layout" || strings.HasPrefix(name, "components/") {
			continue
		}
		tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := tmpl.New("content").Parse(content); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := addComponents(tmpl); err != nil {
			return nil, err
		}
		set.pages[name] = tmpl
	}

	// Components alone, for htmx fragment responses.
	frag := template.New("fragments").Funcs(templateFuncs)
	if err := addComponents(frag); err != nil {
		return nil, err
	}
	set.pages["fragments"] = frag

	return set, nil
}

func addComponents(tmpl *template.Template) error {
	for name, content := range templates {
		if !strings.HasPrefix(name, "components/") {
			continue
		}
		if _, err := tmpl.New(strings.TrimPrefix(name, "components/")).Parse(content); err != nil {
			return fmt.Errorf("parse component %s: %w", name, err)
		}
	}
	return nil
}

// page renders a full page inside the layout.
func (s *templateSet) page(w io.Writer, name string, data map[string]any) error {
	tmpl, ok := s.pages[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// fragment renders a single component without the layout.
func (s *templateSet) fragment(w io.Writer, name string, data map[string]any) error {
	return s.pages["fragments"].ExecuteTemplate(w, name, data)
}

// templates holds all template content. Components ("components/...") are shared
// by every page and can be rendered on their own as htmx fragments.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="/static/js/app.js" defer></script>
    <link rel="stylesheet" href="/static/css/app.css">
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex h-16">
                <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">
                    rickdex
                </a>
            </div>
        </div>
    </nav>

    <main id="main" class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>

    <div id="toasts" class="fixed bottom-4 right-4 space-y-2 z-50" aria-live="polite"></div>
</body>
</html>`,

	"error": `{{define "content"}}
<div class="min-h-[50vh] flex items-center justify-center">
    <div class="text-center">
        <h1 class="text-4xl font-bold text-gray-900 mb-4">{{.Heading}}</h1>
        <p class="text-gray-600 mb-8">{{.Message}}</p>
        <a href="/" class="text-indigo-600 hover:text-indigo-500">Back to Characters</a>
    </div>
</div>
{{end}}`,

	"characters/list": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="text-center mb-8">
        <h1 class="text-4xl font-bold mb-4 text-indigo-700">Rick &amp; Morty Character Explorer</h1>
        <p class="text-lg text-gray-500">Explore the multiverse and discover all your favorite characters</p>
    </div>

    {{if .Panel}}
        {{template "character_panel" .Panel}}
    {{else}}
        {{template "character_skeleton" .}}
    {{end}}
</div>
{{end}}`,

	"characters/detail": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    {{if .Panel}}
        {{template "detail_panel" .Panel}}
    {{else}}
        {{template "detail_skeleton" .}}
    {{end}}
</div>
{{end}}`,

	"components/list_toolbar": `{{define "list_toolbar"}}
<div class="flex justify-between items-center mb-6">
    <div>
        <h2 class="text-2xl font-bold text-gray-900">Characters</h2>
        {{if .Showing}}
        <p class="text-sm text-gray-500">Showing {{.Showing}} of {{.Total}} characters</p>
        {{end}}
    </div>
    <div class="flex gap-2">
        <button type="button" data-share-url="{{.ShareURL}}" onclick="rickdex.share(this)"
                class="inline-flex items-center px-3 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
            Share Page
        </button>
        <button type="button" hx-post="{{.RefreshPath}}" hx-target="#character-panel" hx-swap="outerHTML"
                hx-indicator="#refresh-overlay" hx-disabled-elt="this" {{if .Fetching}}disabled{{end}}
                class="inline-flex items-center px-3 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50 disabled:opacity-50">
            Refresh
        </button>
    </div>
</div>
{{end}}`,

	"components/character_skeleton": `{{define "character_skeleton"}}
<div id="character-panel" hx-get="{{.PanelPath}}" hx-trigger="load" hx-swap="outerHTML">
    {{template "list_toolbar" .}}
    <div class="bg-white shadow rounded-lg p-6">
        <h3 class="text-lg font-medium text-indigo-600 mb-4">Interdimensional Directory</h3>
        <div class="space-y-4" data-state="loading">
            {{range seq 5}}
            <div class="flex items-center space-x-4 animate-pulse">
                <div class="w-16 h-16 bg-gray-200 rounded-full"></div>
                <div class="space-y-2 flex-1">
                    <div class="h-4 bg-gray-200 rounded w-1/4"></div>
                    <div class="h-3 bg-gray-200 rounded w-1/6"></div>
                </div>
            </div>
            {{end}}
        </div>
    </div>
</div>
{{end}}`,

	"components/character_panel": `{{define "character_panel"}}
<div id="character-panel" data-state="{{.State}}"
     {{if .Revalidate}}hx-get="{{.PanelPath}}" hx-trigger="load" hx-swap="outerHTML"{{end}}>
    {{template "list_toolbar" .}}
    {{if .Error}}
    <div class="bg-white shadow rounded-lg p-6 border border-red-200">
        <div class="text-center">
            <p class="text-red-600 mb-4">Failed to load characters</p>
            <button type="button" hx-get="{{.PanelPath}}" hx-target="#character-panel" hx-swap="outerHTML"
                    class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
                Try Again
            </button>
        </div>
    </div>
    {{else}}
    <div class="bg-white shadow rounded-lg p-6">
        <h3 class="text-lg font-medium text-indigo-600 mb-4">Interdimensional Directory</h3>
        <div class="relative">
            <div id="refresh-overlay" class="refresh-overlay{{if .Fetching}} is-refreshing{{end}}">
                <span class="text-sm text-gray-500">Refreshing...</span>
            </div>
            <div class="rounded-md border border-gray-200 overflow-hidden">
                <table class="w-full">
                    <thead class="bg-gray-50">
                        <tr>
                            {{range .Columns}}<th class="px-4 py-3 text-left text-sm font-medium text-gray-700" data-column="{{.Key}}">{{.Header}}</th>{{end}}
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Rows}}
                        <tr id="character-{{.ID}}" class="border-t border-gray-200 hover:bg-gray-50 cursor-pointer"
                            hx-get="{{.Path}}" hx-target="body" hx-push-url="true">
                            {{range .Cells}}<td class="px-4 py-4">{{.}}</td>{{end}}
                        </tr>
                        {{else}}
                        <tr><td colspan="{{len .Columns}}" class="px-4 py-8 text-center text-gray-500">No characters found.</td></tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
        </div>
    </div>

    <div class="mt-6 flex justify-between items-center">
        <button type="button" id="page-prev" {{if .Pager.HasPrev}}hx-get="{{.PrevPanelPath}}" hx-target="#character-panel" hx-swap="outerHTML" hx-push-url="{{.Pager.PrevPath}}"{{else}}disabled{{end}}
                class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50 disabled:opacity-50">
            Previous
        </button>
        <span class="text-sm text-gray-500">Page {{.Pager.Page}} of {{.Pager.Pages}}</span>
        <button type="button" id="page-next" {{if .Pager.HasNext}}hx-get="{{.NextPanelPath}}" hx-target="#character-panel" hx-swap="outerHTML" hx-push-url="{{.Pager.NextPath}}"{{else}}disabled{{end}}
                class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50 disabled:opacity-50">
            Next
        </button>
    </div>
    {{end}}
</div>
{{end}}`,

	"components/detail_skeleton": `{{define "detail_skeleton"}}
<div id="detail-panel" class="max-w-4xl mx-auto" hx-get="{{.PanelPath}}" hx-trigger="load" hx-swap="outerHTML">
    <div class="animate-pulse space-y-6" data-state="loading">
        <div class="h-8 bg-gray-200 rounded w-1/3"></div>
        <div class="grid md:grid-cols-2 gap-6">
            <div class="h-96 bg-gray-200 rounded"></div>
            <div class="space-y-4">
                <div class="h-8 bg-gray-200 rounded"></div>
                <div class="h-4 bg-gray-200 rounded w-3/4"></div>
                <div class="h-4 bg-gray-200 rounded w-1/2"></div>
            </div>
        </div>
    </div>
</div>
{{end}}`,

	"components/detail_panel": `{{define "detail_panel"}}
<div id="detail-panel" class="max-w-4xl mx-auto space-y-6" data-state="{{.State}}"
     {{if .Revalidate}}hx-get="{{.PanelPath}}" hx-trigger="load" hx-swap="outerHTML"{{end}}>
    {{if .NotFound}}
    <div class="bg-white shadow rounded-lg p-6 border border-red-200">
        <div class="text-center">
            <p class="text-red-600 mb-4">Character not found</p>
            <a href="/" class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
                Back to Characters
            </a>
        </div>
    </div>
    {{else}}
    {{with .Character}}
    <div>
        <button type="button" onclick="history.back()"
                class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
            Back to Characters
        </button>
    </div>

    <div class="grid md:grid-cols-2 gap-6">
        <div class="bg-white shadow rounded-lg overflow-hidden relative">
            <img src="{{.Image}}" alt="{{.Name}}" class="w-full h-96 object-cover">
            <span class="absolute bottom-4 left-4 inline-flex items-center px-2 py-0.5 rounded text-sm font-medium {{statusColor .Status}}">{{.Status}}</span>
        </div>

        <div class="bg-white shadow rounded-lg p-6 space-y-4">
            <div>
                <h1 class="text-3xl font-bold text-green-600">{{.Name}}</h1>
                <p class="text-lg text-gray-500">{{.Species}}</p>
            </div>
            {{if .Type}}
            <div>
                <h4 class="font-semibold text-indigo-600">Type</h4>
                <p class="text-gray-500">{{.Type}}</p>
            </div>
            {{end}}
            <div>
                <h4 class="font-semibold text-indigo-600">Gender</h4>
                <p class="text-gray-500">{{.Gender}}</p>
            </div>
            <hr>
            <div>
                <h4 class="font-semibold text-indigo-600">Origin</h4>
                <p class="text-gray-500">{{.Origin.Name}}</p>
            </div>
            <div>
                <h4 class="font-semibold text-indigo-600">Last Known Location</h4>
                <p class="text-gray-500">{{.Location.Name}}</p>
            </div>
            <hr>
            <div>
                <h4 class="font-semibold text-indigo-600">Created</h4>
                <p class="text-gray-500">{{$.Created}}</p>
            </div>
        </div>
    </div>
    {{end}}

    {{if .Episodes}}
    <div class="bg-white shadow rounded-lg p-6">
        <h3 class="text-lg font-medium text-purple-700 mb-4">Episodes ({{len .Episodes}})</h3>
        <div class="grid sm:grid-cols-2 lg:grid-cols-3 gap-4">
            {{range .Episodes}}
            <div class="border border-gray-200 rounded-md p-4 space-y-2" id="episode-{{.ID}}">
                <span class="inline-flex items-center px-2 py-0.5 rounded border text-xs">{{.Code}}</span>
                <h5 class="font-semibold text-sm leading-tight">{{.Name}}</h5>
                <p class="text-xs text-gray-500">{{.AirDate}}</p>
            </div>
            {{end}}
        </div>
    </div>
    {{end}}
    {{end}}
</div>
{{end}}`,
}
