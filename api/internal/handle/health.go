package handle

import (
	"net/http"

	"text-decoder/api/internal/envelope"
)

const (
	ServiceName = "text-decoder-api"
	Version     = "1.0.0-mvp"
)

// Health is the liveness probe. Its payload is fixed and not enveloped.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	envelope.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   Version,
		"timestamp": envelope.Timestamp(h.now()),
	})
}
