// Package behavior serves the read-only behavior/trait library.
package behavior

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/samber/lo"
)

const DefaultVersion = "1.0.0"

type subcategory struct {
	Behaviors []json.RawMessage `json:"behaviors"`
}

type category struct {
	Category      string        `json:"category"`
	Subcategories []subcategory `json:"subcategories"`
}

type index struct {
	Categories []category `json:"categories"`
}

// Library is loaded once and never mutated afterwards.
type Library struct {
	doc        map[string]any
	count      int
	categories []string
}

// Load reads the library file. A missing file yields the default empty
// library stamped with now; a malformed one is an error.
func Load(path string, now time.Time) (*Library, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("behavior: read %s: %w", path, err)
	}
	lib, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("behavior: %s: %w", path, err)
	}
	return lib, nil
}

func Default(now time.Time) *Library {
	return &Library{
		doc: map[string]any{
			"version":      DefaultVersion,
			"last_updated": now.UTC().Format("2006-01-02T15:04:05.000000"),
			"categories":   []any{},
		},
		categories: []string{},
	}
}

func Parse(b []byte) (*Library, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode library: not an object")
	}

	var idx index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, fmt.Errorf("decode library index: %w", err)
	}

	return &Library{
		doc: doc,
		count: lo.SumBy(idx.Categories, func(c category) int {
			return lo.SumBy(c.Subcategories, func(s subcategory) int { return len(s.Behaviors) })
		}),
		categories: lo.Map(idx.Categories, func(c category, _ int) string { return c.Category }),
	}, nil
}

// Document is the library as stored, unknown fields included.
func (l *Library) Document() map[string]any { return l.doc }

func (l *Library) Count() int { return l.count }

// Categories returns the category names in file order. The slice is a copy.
func (l *Library) Categories() []string {
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// CategoriesJSON is the category list as embedded in the conversation prompt.
func (l *Library) CategoriesJSON() string {
	b, _ := json.Marshal(l.Categories())
	return string(b)
}
