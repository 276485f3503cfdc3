package handle

import (
	"net/http"

	"text-decoder/api/internal/prompt"
	"text-decoder/api/internal/sanitize"
)

func (h *Handle) ResponseImpact(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("conversation", "user_speaker", "draft_response"); err != nil {
		h.fail(w, r, err)
		return
	}
	conversation, err := structured(b, "conversation")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	speaker, err := sanitizedString(b, "user_speaker")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	draft, err := sanitizedString(b, "draft_response")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.analyze(r, prompt.ImpactRequest{
		Conversation:  conversation,
		UserSpeaker:   speaker,
		DraftResponse: draft,
	}, "Unable to analyze response impact. Please try again.")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, res.Data, "Response impact analysis complete")
}

func sanitizedString(b body, field string) (string, error) {
	raw, err := b.str(field)
	if err != nil {
		return "", err
	}
	s := sanitize.Text(raw)
	if s == "" {
		return "", emptyAfterSanitize(field)
	}
	return s, nil
}
