package handle

import (
	"fmt"
	"net/http"
)

func (h *Handle) Behaviors(w http.ResponseWriter, r *http.Request) {
	h.ok(w, h.lib.Document(), fmt.Sprintf("Loaded %d behaviors and traits", h.lib.Count()))
}

func (h *Handle) BehaviorCategories(w http.ResponseWriter, r *http.Request) {
	h.ok(w, map[string]any{"categories": h.lib.Categories()}, "Categories loaded")
}
