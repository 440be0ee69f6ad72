package http

import "net/http"

// NotFoundHandler is the catch-all route, answering with the same JSON error
// envelope the resource and reservation handlers use.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
