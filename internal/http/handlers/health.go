package handlers

import "net/http"

// Healthz is a liveness probe.
func (a *App) Healthz(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
