package handle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"go.uber.org/zap"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/envelope"
	"text-decoder/api/internal/logger"
	"text-decoder/api/internal/store"
)

// MaxUserHash is the length, in characters, a user hash is cut to before use.
const MaxUserHash = 64

func (h *Handle) SyncUpload(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !b.has("encrypted_data") || !b.has("user_hash") {
		h.fail(w, r, apperr.New(apperr.MissingField, "Missing required fields",
			"Both 'encrypted_data' and 'user_hash' are required"))
		return
	}
	hash, err := userHash(b)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.now()
	ts := envelope.Timestamp(now)
	syncID := digest(hash+ts, 32)
	h.log.Info("sync upload received", zap.String("user_hash", logger.HashPrefix(hash)+"..."))
	h.record(r.Context(), store.Receipt{Kind: store.SyncUpload, ConfirmationID: syncID, HashPrefix: logger.HashPrefix(hash), At: now})

	h.ok(w, map[string]any{
		"sync_id":   syncID,
		"timestamp": ts,
		"status":    "stored",
	}, "Data synced successfully")
}

func (h *Handle) SyncDownload(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("user_hash"); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := userHash(b); err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, map[string]any{
		"encrypted_data": nil,
		"last_sync":      nil,
		"status":         "no_data",
	}, "No sync data found")
}

// userHash is the caller's hash cut to MaxUserHash characters.
func userHash(b body) (string, error) {
	s, err := b.str("user_hash")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", apperr.New(apperr.InvalidInput, "Invalid input", "The 'user_hash' field cannot be empty")
	}
	n := 0
	for i := range s {
		if n == MaxUserHash {
			return s[:i], nil
		}
		n++
	}
	return s, nil
}

// digest is the first n hex characters of sha256(s).
func digest(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

// record stores an acknowledgment receipt. A store failure never fails the call.
func (h *Handle) record(ctx context.Context, rc store.Receipt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := h.rec.Record(ctx, rc); err != nil {
		h.log.Warn("audit receipt not stored", zap.String("kind", string(rc.Kind)), zap.Error(err))
	}
}
