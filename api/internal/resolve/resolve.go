// Package resolve turns a model reply into either the parsed object or a
// route-specific degraded object. It never fails.
package resolve

import (
	"encoding/json"
	"strings"

	"text-decoder/api/internal/prompt"
)

type Tag string

const (
	Ok       Tag = "ok"
	Fallback Tag = "fallback"
)

// Result is Ok(Data) or Fallback(Raw, Data with minimal defaults).
type Result struct {
	Tag  Tag
	Data map[string]any
	Raw  string
}

func (r Result) Degraded() bool { return r.Tag == Fallback }

// Resolve parses reply as a JSON object. Any syntactically valid object is
// passed through as-is; field values are not checked against the template's
// described schema.
func Resolve(reply string, id prompt.ID) Result {
	if obj, ok := parseObject(reply); ok {
		return Result{Tag: Ok, Data: obj, Raw: reply}
	}
	return Result{Tag: Fallback, Data: fallback(id, reply), Raw: reply}
}

// SpeakerCount is the length of speakers_identified when it is a list.
func (r Result) SpeakerCount() int {
	if xs, ok := r.Data["speakers_identified"].([]any); ok {
		return len(xs)
	}
	return 0
}

func parseObject(reply string) (map[string]any, bool) {
	body := stripCodeFences(reply)
	if body == "" {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	if strings.TrimSpace(body[dec.InputOffset():]) != "" {
		return nil, false
	}
	return obj, true
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func fallback(id prompt.ID, raw string) map[string]any {
	switch id {
	case prompt.SpeakerIdentification:
		return map[string]any{
			"speakers_identified": []any{},
			"messages":            []any{},
			"analysis_notes":      raw,
			"confidence_overall":  0.5,
			"raw_response":        raw,
		}
	case prompt.ConversationAnalysis:
		return map[string]any{
			"summary":      "Analysis completed",
			"raw_analysis": raw,
			"parse_error":  true,
		}
	case prompt.ResponseImpact:
		return map[string]any{
			"impact_analysis": map[string]any{"raw": raw},
			"raw_response":    raw,
			"parse_error":     true,
		}
	case prompt.Profile:
		return map[string]any{
			"profile_summary": "Profile analysis completed",
			"raw_analysis":    raw,
			"parse_error":     true,
		}
	case prompt.SelfProfile:
		return map[string]any{
			"honest_summary": "Self-analysis completed",
			"raw_analysis":   raw,
			"parse_error":    true,
		}
	default:
		return map[string]any{
			"raw_response": raw,
			"parse_error":  true,
		}
	}
}
