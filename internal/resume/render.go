package resume

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders d as plain text in the classic section order: contact,
// summary, skills, experience, projects, education. Empty sections are skipped.
func WriteText(w io.Writer, d Document) error {
	var b strings.Builder

	name := strings.TrimSpace(d.Personal.Name)
	if name == "" {
		name = "Your Name"
	}
	b.WriteString(strings.ToUpper(name) + "\n")

	var contact []string
	for _, v := range []string{d.Personal.Email, d.Personal.Phone, d.Personal.Location, d.Links.Github, d.Links.Linkedin} {
		if present(v) {
			contact = append(contact, strings.TrimSpace(v))
		}
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, " | ") + "\n")
	}

	section := func(title string) {
		b.WriteString("\n" + strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n")
	}

	if present(d.Summary) {
		section("Professional Summary")
		b.WriteString(strings.TrimSpace(d.Summary) + "\n")
	}

	if d.Skills.Total() > 0 {
		section("Skills")
		for _, c := range SkillCategories {
			list := *d.Skills.list(c)
			if len(list) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(c[:1]))+string(c[1:]), strings.Join(list, ", "))
		}
	}

	if len(d.Experience) > 0 {
		section("Experience")
		for _, e := range d.Experience {
			fmt.Fprintf(&b, "%s, %s (%s)\n", e.Role, e.Company, e.Duration)
			writeBullets(&b, e.Description)
		}
	}

	if len(d.Projects) > 0 {
		section("Projects")
		for _, p := range d.Projects {
			b.WriteString(p.Title)
			if len(p.TechStack) > 0 {
				b.WriteString(" [" + strings.Join(p.TechStack, ", ") + "]")
			}
			b.WriteString("\n")
			writeBullets(&b, p.Description)
			for _, u := range []string{p.LiveURL, p.GithubURL} {
				if present(u) {
					b.WriteString("  " + u + "\n")
				}
			}
		}
	}

	if len(d.Education) > 0 {
		section("Education")
		for _, e := range d.Education {
			fmt.Fprintf(&b, "%s, %s (%s)\n", e.Degree, e.Institution, e.Year)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBullets(b *strings.Builder, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("  - " + line + "\n")
		}
	}
}
