package http

import (
	stdhttp "net/http"
)

// HealthHandler reports liveness. It deliberately avoids touching the
// database; readiness is the job of the startup ping.
func HealthHandler(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
