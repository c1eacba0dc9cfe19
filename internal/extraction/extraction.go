package extraction

import (
	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/textmatch"
)

// Extract groups the catalog keywords found in text by skill category.
//
// Every category of the catalog plus catalog.CategoryOther is present in the
// result. Matches are title-cased and kept in catalog order. When nothing at
// all is found, CategoryOther is filled with the catalog's fallback skills so
// downstream scoring and round mapping never see an empty mapping.
func Extract(text string, cat *catalog.Catalog) Skills {
	if cat == nil {
		cat = catalog.Default()
	}

	names := make([]string, 0, len(cat.SkillCategories)+1)
	for _, c := range cat.SkillCategories {
		names = append(names, c.Name)
	}
	names = append(names, catalog.CategoryOther)
	skills := NewSkills(names...)

	for _, c := range cat.SkillCategories {
		found := textmatch.MatchedKeywords(text, c.Keywords)
		if len(found) == 0 {
			continue
		}
		skills.Set(c.Name, titleUnique(found))
	}

	if skills.Total() == 0 {
		skills.Set(catalog.CategoryOther, cat.FallbackSkills)
	}

	return skills
}

func titleUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		t := textmatch.TitleWords(kw)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
