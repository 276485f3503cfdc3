package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/prompt"
)

func TestRender(t *testing.T) {
	t.Run("speaker identification appends the text", func(t *testing.T) {
		req := require.New(t)
		out, err := prompt.Render(prompt.SpeakerRequest{Text: "Alice: Hi\nBob: Hey"})
		req.NoError(err)
		req.True(strings.HasSuffix(out, "Text to analyze:\nAlice: Hi\nBob: Hey\n"))
		req.Contains(out, `"speakers_identified"`)
	})

	t.Run("conversation analysis fills every placeholder", func(t *testing.T) {
		req := require.New(t)
		out, err := prompt.Render(prompt.ConversationRequest{
			Conversation:       `[{"speaker":"Alice","text":"Hi"}]`,
			Speakers:           `["Alice","Bob"]`,
			BehaviorCategories: `["Communication Styles"]`,
		})
		req.NoError(err)
		req.Contains(out, `Speakers in conversation: ["Alice","Bob"]`)
		req.Contains(out, `Behavior library categories to reference: ["Communication Styles"]`)
		req.Contains(out, "Conversation:\n"+`[{"speaker":"Alice","text":"Hi"}]`)
		req.NotContains(out, "{speakers}")
		req.NotContains(out, "{conversation}")
		// schema braces stay as they are
		req.Contains(out, `"power_dynamics": {`)
	})

	t.Run("response impact", func(t *testing.T) {
		req := require.New(t)
		out, err := prompt.Render(prompt.ImpactRequest{Conversation: "Alice: Hi", UserSpeaker: "Alice", DraftResponse: "How are you?"})
		req.NoError(err)
		req.Contains(out, "- User is: Alice")
		req.Contains(out, "- User's drafted response: How are you?")
	})

	t.Run("profile and self profile", func(t *testing.T) {
		req := require.New(t)
		out, err := prompt.Render(prompt.ProfileRequest{ProfileData: `{"name":"Test"}`})
		req.NoError(err)
		req.Contains(out, "Historical data:\n"+`{"name":"Test"}`)

		out, err = prompt.Render(prompt.SelfProfileRequest{UserData: `{"conversations":[]}`})
		req.NoError(err)
		req.Contains(out, "User's conversation history:\n"+`{"conversations":[]}`)
	})

	t.Run("values are not expanded a second time", func(t *testing.T) {
		req := require.New(t)
		out, err := prompt.Render(prompt.ImpactRequest{Conversation: "x", UserSpeaker: "{conversation}", DraftResponse: "y"})
		req.NoError(err)
		req.Contains(out, "- User is: {conversation}")
	})

	t.Run("empty field is a missing field", func(t *testing.T) {
		req := require.New(t)
		_, err := prompt.Render(prompt.ImpactRequest{Conversation: "x", UserSpeaker: "  ", DraftResponse: "y"})
		req.Error(err)
		ae := apperr.From(err)
		req.Equal(apperr.MissingField, ae.Kind)
		req.Contains(ae.Details, "user_speaker")
	})
}

func TestRegistry(t *testing.T) {
	for _, id := range []prompt.ID{
		prompt.SpeakerIdentification, prompt.ConversationAnalysis, prompt.ResponseImpact, prompt.Profile, prompt.SelfProfile,
	} {
		tpl, ok := prompt.Lookup(id)
		require.True(t, ok, id)
		for _, f := range tpl.Fields {
			require.Contains(t, tpl.Body, "{"+f+"}", "%s lacks placeholder %s", id, f)
		}
	}
}
