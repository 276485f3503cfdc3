// Package prompt holds the five analysis templates and renders them from
// already-sanitized requests. Rendering is literal substitution; no escaping
// is added here.
package prompt

import (
	"fmt"
	"strings"

	"text-decoder/api/internal/apperr"
)

type ID string

const (
	SpeakerIdentification ID = "speaker_identification"
	ConversationAnalysis  ID = "conversation_analysis"
	ResponseImpact        ID = "response_impact"
	Profile               ID = "profile"
	SelfProfile           ID = "self_profile"
)

// Template is a body plus the placeholders it requires.
type Template struct {
	ID     ID
	Body   string
	Fields []string
}

var registry = map[ID]Template{
	SpeakerIdentification: {ID: SpeakerIdentification, Body: SpeakerIdentificationBody, Fields: []string{"text"}},
	ConversationAnalysis: {ID: ConversationAnalysis, Body: ConversationAnalysisBody,
		Fields: []string{"speakers", "behavior_categories", "conversation"}},
	ResponseImpact: {ID: ResponseImpact, Body: ResponseImpactBody,
		Fields: []string{"user_speaker", "draft_response", "conversation"}},
	Profile:     {ID: Profile, Body: ProfileBody, Fields: []string{"profile_data"}},
	SelfProfile: {ID: SelfProfile, Body: SelfProfileBody, Fields: []string{"user_data"}},
}

// Lookup returns the template registered under id.
func Lookup(id ID) (Template, bool) {
	t, ok := registry[id]
	return t, ok
}

// Request is a typed analysis request; every field is sanitized text.
type Request interface {
	TemplateID() ID
	Fields() map[string]string
}

type SpeakerRequest struct {
	Text string
}

func (SpeakerRequest) TemplateID() ID { return SpeakerIdentification }
func (r SpeakerRequest) Fields() map[string]string {
	return map[string]string{"text": r.Text}
}

// ConversationRequest carries JSON-encoded conversation, speaker set and
// behavior category names.
type ConversationRequest struct {
	Conversation       string
	Speakers           string
	BehaviorCategories string
}

func (ConversationRequest) TemplateID() ID { return ConversationAnalysis }
func (r ConversationRequest) Fields() map[string]string {
	return map[string]string{
		"conversation":        r.Conversation,
		"speakers":            r.Speakers,
		"behavior_categories": r.BehaviorCategories,
	}
}

type ImpactRequest struct {
	Conversation  string
	UserSpeaker   string
	DraftResponse string
}

func (ImpactRequest) TemplateID() ID { return ResponseImpact }
func (r ImpactRequest) Fields() map[string]string {
	return map[string]string{
		"conversation":   r.Conversation,
		"user_speaker":   r.UserSpeaker,
		"draft_response": r.DraftResponse,
	}
}

type ProfileRequest struct {
	ProfileData string
}

func (ProfileRequest) TemplateID() ID { return Profile }
func (r ProfileRequest) Fields() map[string]string {
	return map[string]string{"profile_data": r.ProfileData}
}

type SelfProfileRequest struct {
	UserData string
}

func (SelfProfileRequest) TemplateID() ID { return SelfProfile }
func (r SelfProfileRequest) Fields() map[string]string {
	return map[string]string{"user_data": r.UserData}
}

// Render substitutes the request into its template. It fails with
// MissingField when a required field is empty.
func Render(req Request) (string, error) {
	t, ok := Lookup(req.TemplateID())
	if !ok {
		return "", fmt.Errorf("prompt: unknown template %q", req.TemplateID())
	}
	fields := req.Fields()
	pairs := make([]string, 0, 2*len(t.Fields))
	for _, name := range t.Fields {
		v := fields[name]
		if strings.TrimSpace(v) == "" {
			return "", apperr.Missing(name)
		}
		pairs = append(pairs, "{"+name+"}", v)
	}
	// Replacer is single pass, so placeholder text inside values is not expanded.
	return strings.NewReplacer(pairs...).Replace(t.Body), nil
}
