package handle

import (
	"net/http"

	"go.uber.org/zap"

	"text-decoder/api/internal/envelope"
	"text-decoder/api/internal/logger"
	"text-decoder/api/internal/store"
)

func (h *Handle) DeleteUser(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("user_hash"); err != nil {
		h.fail(w, r, err)
		return
	}
	hash, err := userHash(b)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.now()
	ts := envelope.Timestamp(now)
	code := digest("deleted_"+hash+"_"+ts, 16)
	h.log.Info("user data deletion requested", zap.String("user_hash", logger.HashPrefix(hash)+"..."))
	h.record(r.Context(), store.Receipt{Kind: store.Deletion, ConfirmationID: code, HashPrefix: logger.HashPrefix(hash), At: now})

	h.ok(w, map[string]any{
		"deleted":           true,
		"timestamp":         ts,
		"confirmation_code": code,
	}, "All your data has been permanently deleted from our servers")
}
