package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/rickdex/pkg/model"
)

func newRequestID() string {
	return "req_" + uuid.NewString()[:8]
}

// writeData sends data in an "ok" envelope with status 200.
func writeData(w http.ResponseWriter, reqID string, data any) {
	writeEnvelope(w, http.StatusOK, model.Response{Status: "ok", RequestID: reqID, Data: data})
}

// writePage sends one catalog page. Results always encode as a JSON array and
// the pagination block is derived from the page info.
func writePage(w http.ResponseWriter, reqID string, page int, result *model.CharacterPage) {
	writeEnvelope(w, http.StatusOK, model.Response{
		Status:     "ok",
		RequestID:  reqID,
		Data:       orEmpty(result.Results),
		Pagination: model.NewPagination(page, result.Info),
	})
}

func writeError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	writeEnvelope(w, status, model.Response{Status: "error", RequestID: reqID, Error: apiErr})
}

func writeEnvelope(w http.ResponseWriter, status int, resp model.Response) {
	resp.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; a failed encode only means the client left.
	_ = json.NewEncoder(w).Encode(resp)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
