// Package sanitize strips markup from untrusted text and caps its length.
package sanitize

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// MaxRunes is the hard cap on sanitized text, in code points.
const MaxRunes = 50000

// Text removes every tag, comment and doctype from s and keeps the text
// between them byte-for-byte. Entities are not decoded and nothing is escaped.
// The result is truncated to MaxRunes.
//
// One tokenizer pass is made. A '<' left in the text that could still open a
// tag is dropped, so the output contains no markup and Text(Text(s)) == Text(s).
func Text(s string) string {
	if s == "" {
		return ""
	}
	return clampRunes(dropTagOpeners(strip(s)), MaxRunes)
}

// JSON encodes v the way it will be embedded in a prompt. Every string in v,
// keys included, goes through Text before encoding, so markup never spans
// JSON structure. Strings are passed through Text directly.
func JSON(v any) (string, error) {
	if s, ok := v.(string); ok {
		return Text(s), nil
	}
	raw, err := encode(v)
	if err != nil {
		return "", err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", err
	}
	out, err := encode(leaves(tree))
	if err != nil {
		return "", err
	}
	return clampRunes(string(out), MaxRunes), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// leaves sanitizes every string in a decoded JSON tree.
func leaves(v any) any {
	switch t := v.(type) {
	case string:
		return Text(t)
	case []any:
		for i := range t {
			t[i] = leaves(t[i])
		}
		return t
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[Text(k)] = leaves(e)
		}
		return m
	default:
		return v
	}
}

func strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}

// dropTagOpeners removes each '<' whose next kept byte could start a tag.
// Walking backwards makes "<<a" lose both brackets, not just the inner one.
func dropTagOpeners(s string) string {
	if strings.IndexByte(s, '<') < 0 {
		return s
	}
	drop := make([]bool, len(s))
	var next byte
	n := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '<' && opensTag(next) {
			drop[i] = true
			n++
			continue
		}
		next = s[i]
	}
	if n == 0 {
		return s
	}
	b := make([]byte, 0, len(s)-n)
	for i := 0; i < len(s); i++ {
		if !drop[i] {
			b = append(b, s[i])
		}
	}
	return string(b)
}

func opensTag(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '/' || c == '!' || c == '?'
}

// clampRunes ensures a string does not exceed max runes.
func clampRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
