package readiness

import "fmt"

// Confidence is the user's self rating of a skill.
type Confidence string

const (
	Default  Confidence = "default"
	Know     Confidence = "know"
	Practice Confidence = "practice"
)

// Next returns the rating that follows c in the default -> know -> practice cycle.
// Unknown values restart the cycle at Know, as if they were Default.
func (c Confidence) Next() Confidence {
	switch c {
	case Know:
		return Practice
	case Practice:
		return Default
	default:
		return Know
	}
}

// Label is the short marker shown next to a skill in reports.
func (c Confidence) Label() string {
	switch c {
	case Know:
		return "✓ Know"
	case Practice:
		return "! Practice"
	default:
		return "- Default"
	}
}

// ParseConfidence validates a stored or user supplied rating.
func ParseConfidence(s string) (Confidence, error) {
	switch c := Confidence(s); c {
	case Default, Know, Practice:
		return c, nil
	case "":
		return Default, nil
	default:
		return Default, fmt.Errorf("unknown confidence %q", s)
	}
}

// ConfidenceMap holds the rating of every skill the user touched.
type ConfidenceMap map[string]Confidence

// Of returns the rating of skill, Default when untouched.
func (m ConfidenceMap) Of(skill string) Confidence {
	if c, ok := m[skill]; ok {
		return c
	}
	return Default
}

// Toggle advances skill to its next rating and returns the new rating.
func (m ConfidenceMap) Toggle(skill string) Confidence {
	next := m.Of(skill).Next()
	m[skill] = next
	return next
}

// Clone returns a copy of m that is never nil.
func (m ConfidenceMap) Clone() ConfidenceMap {
	out := make(ConfidenceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
