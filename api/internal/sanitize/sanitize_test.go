package sanitize_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"text-decoder/api/internal/sanitize"
)

func TestText(t *testing.T) {
	t.Run("removes script tags and keeps the text around them", func(t *testing.T) {
		req := require.New(t)
		got := sanitize.Text("<script>alert('xss')</script>Hello")
		req.NotContains(got, "<script>")
		req.Contains(got, "Hello")
	})

	t.Run("removes attributes with their tag", func(t *testing.T) {
		req := require.New(t)
		got := sanitize.Text(`<a href="javascript:alert(1)">Click</a>`)
		req.Equal("Click", got)
	})

	t.Run("removes void tags with event handlers", func(t *testing.T) {
		require.Equal(t, "Test", sanitize.Text("<img src=x onerror=alert(1)>Test"))
	})

	t.Run("removes comments", func(t *testing.T) {
		require.Equal(t, "before  after", sanitize.Text("before <!-- hidden --> after"))
	})

	t.Run("does not leave a tag formed by stripping", func(t *testing.T) {
		require.Equal(t, "b>", sanitize.Text("<<b>b>"))
		require.Equal(t, "b", sanitize.Text("<<b>b"))
	})

	t.Run("output is stable under a second pass", func(t *testing.T) {
		for _, in := range []string{
			"<<b>b>",
			"<<<b>b>b>",
			"<</b>/b>",
			"<<!-- x -->!-- y -->",
			"<<?xml?>?php",
			"<script>a<b</script>c",
			"<plaintext></b><i>",
			"x <<a",
			"a << b",
		} {
			once := sanitize.Text(in)
			require.Equal(t, once, sanitize.Text(once), in)
			require.NotRegexp(t, `<[A-Za-z/!?]`, once, in)
		}
	})

	t.Run("deeply nested markup is stripped in one pass", func(t *testing.T) {
		req := require.New(t)
		k := (1 << 20) / 3
		in := strings.Repeat("<", k) + "b>" + strings.Repeat("b>", k-1)

		start := time.Now()
		got := sanitize.Text(in)
		req.Less(time.Since(start), 3*time.Second)

		req.NotContains(got, "<")
		req.Len(got, sanitize.MaxRunes)
	})

	t.Run("keeps plain text verbatim", func(t *testing.T) {
		for _, in := range []string{
			"This is a normal conversation between two people.",
			"Alice: Hello\nBob: Hi there\n\n",
			"Café, naïve, 日本語, emoji ☕",
			"Tom & Jerry &amp; friends",
			"a < b and c > d",
		} {
			require.Equal(t, in, sanitize.Text(in))
		}
	})

	t.Run("truncates to the code point cap", func(t *testing.T) {
		req := require.New(t)
		req.Len(sanitize.Text(strings.Repeat("a", 60000)), sanitize.MaxRunes)

		wide := sanitize.Text(strings.Repeat("é", 60000))
		req.Equal(sanitize.MaxRunes, utf8.RuneCountInString(wide))
		req.True(utf8.ValidString(wide))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		require.Equal(t, "", sanitize.Text(""))
	})
}

func TestJSON(t *testing.T) {
	t.Run("encodes structures without html escaping", func(t *testing.T) {
		req := require.New(t)
		got, err := sanitize.JSON([]map[string]string{{"speaker": "Alice", "text": "Tom & Jerry"}})
		req.NoError(err)
		req.Equal(`[{"speaker":"Alice","text":"Tom & Jerry"}]`, got)
	})

	t.Run("strips markup inside encoded strings", func(t *testing.T) {
		req := require.New(t)
		got, err := sanitize.JSON(map[string]any{"note": "<b>bold</b>"})
		req.NoError(err)
		req.Equal(`{"note":"bold"}`, got)
	})

	t.Run("markup cannot span two values", func(t *testing.T) {
		req := require.New(t)
		got, err := sanitize.JSON(map[string]any{"a": "<b", "c": "d>"})
		req.NoError(err)
		req.Equal(`{"a":"","c":"d>"}`, got)
	})

	t.Run("keys and nested leaves are sanitized, numbers kept", func(t *testing.T) {
		req := require.New(t)
		got, err := sanitize.JSON(map[string]any{
			"<i>k</i>": []any{"<b>x</b>", 12.5, true, nil, map[string]any{"n": "<p>y</p>"}},
		})
		req.NoError(err)
		req.Equal(`{"k":["x",12.5,true,null,{"n":"y"}]}`, got)
	})

	t.Run("plain strings are sanitized, not quoted", func(t *testing.T) {
		req := require.New(t)
		got, err := sanitize.JSON("Alice: Hi\nBob: <i>Hey</i>")
		req.NoError(err)
		req.Equal("Alice: Hi\nBob: Hey", got)
	})
}
