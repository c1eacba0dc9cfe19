package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spigell/hirekit/internal/catalog"
)

// Skills maps category names to the skills found for them. Every known category
// is always present, in catalog order, even when it holds no skills.
type Skills struct {
	order []string
	items map[string][]string
}

// NewSkills returns Skills with every name present and empty.
func NewSkills(names ...string) Skills {
	s := Skills{items: make(map[string][]string, len(names))}
	for _, name := range names {
		s.ensure(name)
	}
	return s
}

// EmptySkills returns the canonical empty mapping: every default category, no skills.
func EmptySkills() Skills {
	return NewSkills(catalog.SkillCategoryNames...)
}

func (s *Skills) ensure(name string) {
	if s.items == nil {
		s.items = make(map[string][]string)
	}
	if _, ok := s.items[name]; ok {
		return
	}
	s.order = append(s.order, name)
	s.items[name] = []string{}
}

// Set replaces the skills of category, adding the category if it is unknown.
func (s *Skills) Set(category string, skills []string) {
	s.ensure(category)
	cp := make([]string, len(skills))
	copy(cp, skills)
	s.items[category] = cp
}

// Get returns the skills of category. Unknown categories yield an empty slice.
func (s Skills) Get(category string) []string {
	if v, ok := s.items[category]; ok {
		return v
	}
	return []string{}
}

// Categories returns the category names in report order.
func (s Skills) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// NonEmptyCount returns how many categories hold at least one skill.
func (s Skills) NonEmptyCount() int {
	n := 0
	for _, name := range s.order {
		if len(s.items[name]) > 0 {
			n++
		}
	}
	return n
}

// Total returns the number of skills across all categories.
func (s Skills) Total() int {
	n := 0
	for _, name := range s.order {
		n += len(s.items[name])
	}
	return n
}

// All returns every skill in category order.
func (s Skills) All() []string {
	out := make([]string, 0, s.Total())
	for _, name := range s.order {
		out = append(out, s.items[name]...)
	}
	return out
}

// MarshalJSON writes the categories as a JSON object in report order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.items[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string arrays. Known categories are
// ordered as in the catalog and always present; unknown ones follow in input order.
func (s *Skills) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object, got %v", tok)
	}

	parsed := make(map[string][]string)
	var extra []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("skills: expected key, got %v", tok)
		}
		var list []string
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("skills: category %q: %w", key, err)
		}
		if _, seen := parsed[key]; !seen && !isKnownCategory(key) {
			extra = append(extra, key)
		}
		parsed[key] = list
	}

	out := EmptySkills()
	for _, name := range catalog.SkillCategoryNames {
		if list, ok := parsed[name]; ok && list != nil {
			out.Set(name, list)
		}
	}
	for _, name := range extra {
		out.Set(name, parsed[name])
	}
	*s = out
	return nil
}

func isKnownCategory(name string) bool {
	for _, known := range catalog.SkillCategoryNames {
		if known == name {
			return true
		}
	}
	return false
}
