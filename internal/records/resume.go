package records

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/spigell/hirekit/internal/resume"
)

// KeyResume is the store key of the resume document.
const KeyResume = "resumeBuilderData"

// ParseResume decodes a stored resume, migrating older layouts: a flat skills
// array becomes the technical group, and projects get ids, titles from "name"
// and live links from "link". The second result is false when the stored
// value could not be used at all and an empty document was returned.
func ParseResume(raw []byte) (resume.Document, bool) {
	doc := resume.New()
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, true
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return doc, false
	}

	if list, ok := m["skills"].([]any); ok {
		m["skills"] = map[string]any{"technical": list, "soft": []any{}, "tools": []any{}}
	}
	if projects, ok := m["projects"].([]any); ok {
		migrated := make([]any, 0, len(projects))
		for _, p := range projects {
			if pm, ok := p.(map[string]any); ok {
				migrated = append(migrated, migrateProject(pm))
			}
		}
		m["projects"] = migrated
	}

	if err := Decode(m, &doc); err != nil {
		return resume.New(), false
	}

	fillResumeDefaults(&doc)
	return doc, true
}

func migrateProject(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	if s, _ := p["id"].(string); strings.TrimSpace(s) == "" {
		out["id"] = resume.NewProjectID()
	}
	if s, _ := p["title"].(string); s == "" {
		name, _ := p["name"].(string)
		out["title"] = name
	}
	if s, _ := p["liveUrl"].(string); s == "" {
		link, _ := p["link"].(string)
		out["liveUrl"] = link
	}
	if _, ok := p["techStack"].([]any); !ok {
		out["techStack"] = []any{}
	}
	return out
}

func fillResumeDefaults(d *resume.Document) {
	if d.Education == nil {
		d.Education = []resume.Education{}
	}
	if d.Experience == nil {
		d.Experience = []resume.Experience{}
	}
	if d.Projects == nil {
		d.Projects = []resume.Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].TechStack == nil {
			d.Projects[i].TechStack = []string{}
		}
	}
	if d.Skills.Technical == nil {
		d.Skills.Technical = []string{}
	}
	if d.Skills.Soft == nil {
		d.Skills.Soft = []string{}
	}
	if d.Skills.Tools == nil {
		d.Skills.Tools = []string{}
	}
	if !slices.Contains(resume.Templates, d.Template) {
		d.Template = resume.TemplateClassic
	}
	if strings.TrimSpace(d.ThemeColor) == "" {
		d.ThemeColor = resume.DefaultThemeColor
	}
}
