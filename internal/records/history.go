package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/extraction"
	"github.com/spigell/hirekit/internal/intel"
	"github.com/spigell/hirekit/internal/readiness"
	"github.com/spigell/hirekit/internal/rounds"
)

// KeyHistory is the store key of the analysis history.
const KeyHistory = "placement_analysis_history"

const timeLayout = time.RFC3339

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// AnalysisRecord is one stored placement analysis. After creation only
// SkillConfidenceMap, FinalScore and UpdatedAt change.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company string `json:"company"`
	Role    string `json:"role"`
	JDText  string `json:"jdText"`

	ExtractedSkills extraction.Skills   `json:"extractedSkills"`
	Checklist       []readiness.Section `json:"checklist"`
	Plan            []readiness.Section `json:"plan"`
	Questions       []string            `json:"questions"`

	BaseScore          int                     `json:"baseScore"`
	SkillConfidenceMap readiness.ConfidenceMap `json:"skillConfidenceMap"`
	FinalScore         int                     `json:"finalScore"`

	CompanyIntel *intel.Intel   `json:"companyIntel"`
	RoundMapping []rounds.Round `json:"roundMapping"`
}

// NewAnalysisID returns a fresh record id.
func NewAnalysisID() string {
	return "analysis_" + uuid.NewString()
}

// legacyID derives a stable id for a stored entry that has none, so the same
// entry gets the same id on every read. occurrence tells identical entries apart.
func legacyID(raw []byte, occurrence int) string {
	data := fmt.Appendf(nil, "%s#%d", bytes.TrimSpace(raw), occurrence)
	return "analysis_" + uuid.NewSHA1(uuid.NameSpaceOID, data).String()
}

// History is the decoded analysis history, newest first.
type History struct {
	Entries []AnalysisRecord
	// Corrupted is set when anything had to be dropped while reading.
	Corrupted bool
}

// Find returns the entry with id.
func (h History) Find(id string) (AnalysisRecord, bool) {
	for _, e := range h.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return AnalysisRecord{}, false
}

// ParseHistory decodes stored history of any known shape. Entries that are
// not objects are skipped; everything else is normalised field by field.
func ParseHistory(raw []byte, now time.Time) History {
	h := History{Entries: []AnalysisRecord{}}
	if len(bytes.TrimSpace(raw)) == 0 {
		return h
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		h.Corrupted = true
		return h
	}

	seen := make(map[string]int)
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			h.Corrupted = true
			continue
		}
		rec := normalizeEntry(fields, now)
		if rec.ID == "" {
			key := string(bytes.TrimSpace(item))
			rec.ID = legacyID(item, seen[key])
			seen[key]++
		}
		h.Entries = append(h.Entries, rec)
	}
	return h
}

func normalizeEntry(f map[string]json.RawMessage, now time.Time) AnalysisRecord {
	rec := AnalysisRecord{
		ID:      stringField(f["id"]),
		Company: stringField(f["company"]),
		Role:    stringField(f["role"]),
		JDText:  stringField(f["jdText"]),
	}

	created, ok := timeField(f["createdAt"])
	if !ok {
		created = now
	}
	updated, ok := timeField(f["updatedAt"])
	if !ok {
		updated = created
	}
	rec.CreatedAt, rec.UpdatedAt = created.UTC(), updated.UTC()

	rec.ExtractedSkills = normalizeSkills(f["extractedSkills"])
	rec.Checklist = sectionsField(f["checklist"])
	rec.Plan = sectionsField(f["plan"])
	rec.Questions = stringsField(f["questions"])

	base, ok := intField(f["baseScore"])
	if !ok {
		base, _ = intField(f["readinessScore"])
	}
	rec.BaseScore = clampScore(base)

	rec.SkillConfidenceMap = confidenceField(f["skillConfidenceMap"])

	final, ok := intField(f["finalScore"])
	if !ok {
		final, ok = intField(f["adjustedScore"])
	}
	if !ok {
		final = rec.BaseScore
	}
	rec.FinalScore = clampScore(final)
	if len(rec.SkillConfidenceMap) > 0 {
		rec.FinalScore = readiness.FinalScore(rec.BaseScore, rec.SkillConfidenceMap)
	}

	var companyIntel map[string]any
	if json.Unmarshal(f["companyIntel"], &companyIntel) == nil && companyIntel != nil {
		var ci intel.Intel
		if Decode(companyIntel, &ci) == nil {
			rec.CompanyIntel = &ci
		}
	}

	var mapping []any
	if json.Unmarshal(f["roundMapping"], &mapping) == nil && mapping != nil {
		var rs []rounds.Round
		if Decode(mapping, &rs) == nil {
			rec.RoundMapping = rs
		}
	}

	return rec
}

func clampScore(v int) int {
	return max(0, min(v, 100))
}

func stringField(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func timeField(raw json.RawMessage) (time.Time, bool) {
	s := stringField(raw)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func intField(raw json.RawMessage) (int, bool) {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0, false
	}
	return int(f), true
}

// stringsField decodes an array, keeping only its string elements.
func stringsField(raw json.RawMessage) []string {
	out := []string{}
	var items []any
	if json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func confidenceField(raw json.RawMessage) readiness.ConfidenceMap {
	out := readiness.ConfidenceMap{}
	var m map[string]any
	if json.Unmarshal(raw, &m) != nil {
		return out
	}
	for skill, v := range m {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c, err := readiness.ParseConfidence(s)
		if err != nil {
			continue
		}
		out[skill] = c
	}
	return out
}

// legacySkillKeys maps each category to the camel-case key older records used.
var legacySkillKeys = map[string]string{
	catalog.CategoryCoreCS:    "coreCS",
	catalog.CategoryLanguages: "languages",
	catalog.CategoryWeb:       "web",
	catalog.CategoryData:      "data",
	catalog.CategoryCloud:     "cloud",
	catalog.CategoryTesting:   "testing",
	catalog.CategoryOther:     "other",
}

func normalizeSkills(raw json.RawMessage) extraction.Skills {
	skills := extraction.EmptySkills()

	var m map[string]json.RawMessage
	if json.Unmarshal(raw, &m) != nil || m == nil {
		return skills
	}

	for _, name := range catalog.SkillCategoryNames {
		v, ok := m[name]
		if !ok || !isArray(v) {
			v = m[legacySkillKeys[name]]
		}
		if isArray(v) {
			skills.Set(name, stringsField(v))
		}
	}
	return skills
}

func isArray(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), "[")
}

// sectionsField accepts the current array of sections and the older object
// form that maps each title to its items, keeping the object's key order.
func sectionsField(raw json.RawMessage) []readiness.Section {
	out := []readiness.Section{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return out
	}

	if trimmed[0] == '[' {
		var sections []map[string]json.RawMessage
		if json.Unmarshal(trimmed, &sections) != nil {
			return out
		}
		for _, s := range sections {
			if s == nil {
				continue
			}
			out = append(out, readiness.Section{Title: stringField(s["title"]), Items: stringsField(s["items"])})
		}
		return out
	}

	if trimmed[0] != '{' {
		return out
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return out
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		title, _ := tok.(string)
		var items json.RawMessage
		if err := dec.Decode(&items); err != nil {
			return out
		}
		out = append(out, readiness.Section{Title: title, Items: stringsField(items)})
	}
	return out
}
