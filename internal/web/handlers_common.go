package web

import (
	"net/http"
	"strconv"
)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// methodNotAllowed is the body returned for unsupported methods.
type methodNotAllowed struct {
	Error  string `json:"error"`
	Method string `json:"method"`
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, methodNotAllowed{
		Error:  "Method not allowed",
		Method: r.Method,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "Not found",
		Message: "Not found",
		Code:    "HTTP404",
	})
}

// handleOptions answers bare OPTIONS requests. Real CORS preflights are
// answered by the cors middleware before reaching the router.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
