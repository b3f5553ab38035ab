package server

import (
	"net/http"
	"runtime"
	"time"
)

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	Uptime        string `json:"uptime"`
	Upstream      string `json:"upstream"`
	CachedQueries int    `json:"cached_queries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	writeData(w, reqID, healthResponse{
		Status:        "healthy",
		Version:       s.version,
		GoVersion:     runtime.Version(),
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		Upstream:      s.config.APIBaseURL,
		CachedQueries: s.dir.CachedQueries(),
	})
}
