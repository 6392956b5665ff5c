package rest

import "net/http"

// ping answers "pong" while the game can be loaded from storage.
func (that *GameHandler) ping(w http.ResponseWriter, r *http.Request) {
	if _, err := that.gameUseCase.GetGame(r.Context()); err != nil {
		that.logger.Warn("ping failed", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
