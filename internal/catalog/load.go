package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays the YAML file at path on the built-in catalog.
// Sections absent from the file keep their defaults.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	return Parse(b)
}

// Parse overlays the YAML document on the built-in catalog and validates the result.
func Parse(b []byte) (*Catalog, error) {
	var overlay Catalog
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	cat := Default()
	if overlay.SkillCategories != nil {
		cat.SkillCategories = overlay.SkillCategories
	}
	if overlay.FallbackSkills != nil {
		cat.FallbackSkills = overlay.FallbackSkills
	}
	if overlay.EnterpriseCompanies != nil {
		cat.EnterpriseCompanies = overlay.EnterpriseCompanies
	}
	if overlay.MidSizeCompanies != nil {
		cat.MidSizeCompanies = overlay.MidSizeCompanies
	}
	if overlay.Industries != nil {
		cat.Industries = overlay.Industries
	}
	if overlay.ActionVerbs != nil {
		cat.ActionVerbs = overlay.ActionVerbs
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
