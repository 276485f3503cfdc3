package handle

import (
	"fmt"
	"net/http"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/prompt"
	"text-decoder/api/internal/sanitize"
)

func (h *Handle) IdentifySpeakers(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("text"); err != nil {
		h.fail(w, r, err)
		return
	}
	raw, err := b.str("text")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	text := sanitize.Text(raw)
	if text == "" {
		h.fail(w, r, apperr.New(apperr.InvalidInput, "Invalid input", "Text cannot be empty after sanitization"))
		return
	}

	res, err := h.analyze(r, prompt.SpeakerRequest{Text: text}, "Unable to process the conversation. Please try again.")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, res.Data, fmt.Sprintf("Identified %d speakers in the conversation", res.SpeakerCount()))
}
