package handler

import "net/http"

// healthBody is the fixed response of the health endpoint.
type healthBody struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthBody{Status: "ok"})
}
