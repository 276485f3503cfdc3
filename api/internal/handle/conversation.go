package handle

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/prompt"
	"text-decoder/api/internal/sanitize"
)

func (h *Handle) AnalyzeConversation(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("conversation", "speakers"); err != nil {
		h.fail(w, r, err)
		return
	}
	conversation, err := structured(b, "conversation")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	speakers, err := speakerSet(b)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.analyze(r, prompt.ConversationRequest{
		Conversation:       conversation,
		Speakers:           speakers,
		BehaviorCategories: h.lib.CategoriesJSON(),
	}, "Unable to analyze the conversation. Please try again.")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, res.Data, "Conversation analysis complete")
}

// structured JSON-encodes any JSON value and sanitizes the encoding.
func structured(b body, field string) (string, error) {
	v, err := b.value(field)
	if err != nil {
		return "", err
	}
	s, err := sanitize.JSON(v)
	if err != nil {
		return "", apperr.Wrap(apperr.InvalidInput, "Invalid input", "The '"+field+"' field could not be encoded", err)
	}
	if strings.TrimSpace(s) == "" {
		return "", emptyAfterSanitize(field)
	}
	return s, nil
}

// speakerSet is the sanitized, de-duplicated speaker list, JSON-encoded.
func speakerSet(b body) (string, error) {
	var names []string
	if err := json.Unmarshal(b["speakers"], &names); err != nil {
		return "", apperr.New(apperr.InvalidInput, "Invalid input", "The 'speakers' field must be a list of names")
	}
	names = lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(sanitize.Text(n))
	})))
	if len(names) == 0 {
		return "", emptyAfterSanitize("speakers")
	}
	return sanitize.JSON(names)
}
