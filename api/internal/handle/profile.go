package handle

import (
	"net/http"

	"text-decoder/api/internal/prompt"
)

func (h *Handle) Profile(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("profile_data"); err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := structured(b, "profile_data")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.analyze(r, prompt.ProfileRequest{ProfileData: data},
		"Unable to generate profile analysis. Please try again.")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, res.Data, "Profile analysis complete")
}

func (h *Handle) SelfProfile(w http.ResponseWriter, r *http.Request) {
	b, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := b.require("user_data"); err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := structured(b, "user_data")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.analyze(r, prompt.SelfProfileRequest{UserData: data},
		"Unable to generate self-profile analysis. Please try again.")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, res.Data, "Self-profile analysis complete")
}
