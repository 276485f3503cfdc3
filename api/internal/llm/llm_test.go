package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/llm"
	"text-decoder/api/internal/mocks"
	"text-decoder/api/internal/prompt"
)

func TestInvoke(t *testing.T) {
	t.Run("passes the template config through", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().
			Generate(gomock.Any(), "rendered", llm.Configs[prompt.ResponseImpact]).
			Return(`{"ok":true}`, nil)

		out, err := llm.NewInvoker(gen, time.Second).Invoke(context.Background(), prompt.ResponseImpact, "rendered")

		req.NoError(err)
		req.Equal(`{"ok":true}`, out)
	})

	t.Run("service failure is an upstream error without its text", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Name().Return("gemini").AnyTimes()
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("googleapi: Error 429: quota"))

		_, err := llm.NewInvoker(gen, time.Second).Invoke(context.Background(), prompt.Profile, "p")

		ae := apperr.From(err)
		req.Equal(apperr.UpstreamError, ae.Kind)
		req.NotContains(ae.Msg+ae.Details, "quota")
		req.ErrorContains(err, "quota")
	})

	t.Run("timeout is an upstream error", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Name().Return("gemini").AnyTimes()
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ llm.GenerationConfig) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			})

		_, err := llm.NewInvoker(gen, 20*time.Millisecond).Invoke(context.Background(), prompt.SelfProfile, "p")

		req.Equal(apperr.UpstreamError, apperr.KindOf(err))
		req.ErrorIs(err, context.DeadlineExceeded)
	})

	t.Run("reply arriving after the deadline is discarded", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Name().Return("gemini").AnyTimes()
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ llm.GenerationConfig) (string, error) {
				<-ctx.Done()
				return `{"late":true}`, nil
			})

		_, err := llm.NewInvoker(gen, 10*time.Millisecond).Invoke(context.Background(), prompt.Profile, "p")

		req.Equal(apperr.UpstreamError, apperr.KindOf(err))
	})

	t.Run("unknown template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)

		_, err := llm.NewInvoker(gen, 0).Invoke(context.Background(), prompt.ID("nope"), "p")

		require.Equal(t, apperr.UnexpectedFailure, apperr.KindOf(err))
	})
}

func TestConfigsCoverEveryTemplate(t *testing.T) {
	for _, id := range []prompt.ID{
		prompt.SpeakerIdentification, prompt.ConversationAnalysis, prompt.ResponseImpact, prompt.Profile, prompt.SelfProfile,
	} {
		cfg, ok := llm.Configs[id]
		require.True(t, ok, id)
		require.True(t, cfg.StructuredOutput)
		require.GreaterOrEqual(t, cfg.Temperature, float32(0.3))
		require.LessOrEqual(t, cfg.Temperature, float32(0.5))
		require.GreaterOrEqual(t, cfg.MaxOutputTokens, int32(4096))
		require.LessOrEqual(t, cfg.MaxOutputTokens, int32(8192))
	}
}
