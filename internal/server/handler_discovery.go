package server

import (
	"net/http"

	"github.com/me/rickdex/pkg/model"
)

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	writeData(w, reqID, discoveryResponse{
		Name:        "rickdex API",
		Version:     "v1",
		Description: "Cached, read-only access to the Rick and Morty character catalog",
		Endpoints: []endpointInfo{
			{"/api/v1/characters", []string{"GET"}, "One page of characters. Accepts ?page=N (default 1)"},
			{"/api/v1/characters/{id}", []string{"GET"}, "Single character"},
			{"/api/v1/characters/{id}/episodes", []string{"GET"}, "Episodes the character appears in, resolved in one batch"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, RequestIDFromContext(r.Context()), http.StatusNotFound,
		model.NewNotFoundError("endpoint", r.URL.Path))
}
