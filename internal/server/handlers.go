package server

import (
	"net/http"

	"github.com/vantez/engine/internal/httputil"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"service": "valuation-engine",
	}

	httputil.Write(w, r, s.log, http.StatusOK, response)
}
