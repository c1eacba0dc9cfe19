package tracker

// Preference holds what the user is looking for. It is replaced as a whole
// whenever the user saves settings.
type Preference struct {
	RoleKeywords    []string        `json:"roleKeywords" mapstructure:"roleKeywords"`
	Locations       []string        `json:"locations" mapstructure:"locations"`
	WorkModes       []string        `json:"workMode" mapstructure:"workMode"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" mapstructure:"experienceLevel"`
	Skills          []string        `json:"skills" mapstructure:"skills"`
	MinMatchScore   int             `json:"minMatchScore" mapstructure:"minMatchScore"`
}

// DefaultMinMatchScore is the threshold used until the user picks one.
const DefaultMinMatchScore = 40

// DefaultPreference is used when nothing usable is stored.
func DefaultPreference() Preference {
	return Preference{
		RoleKeywords:    []string{},
		Locations:       []string{},
		WorkModes:       []string{},
		ExperienceLevel: ExperienceFresher,
		Skills:          []string{},
		MinMatchScore:   DefaultMinMatchScore,
	}
}
