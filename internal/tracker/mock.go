package tracker

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spigell/hirekit/internal/util"
)

// DefaultListingCount is the size of a generated working set.
const DefaultListingCount = 60

var (
	mockCompanies = []string{
		"TCS", "Infosys", "Wipro", "Accenture", "Capgemini", "Cognizant",
		"IBM", "Oracle", "SAP", "Dell",
		"Amazon", "Flipkart", "Swiggy", "Razorpay", "PhonePe", "Paytm",
		"Zoho", "Freshworks", "Juspay", "CRED", "Meesho", "Zomato", "Ola", "Urban Company",
	}

	mockRoles = []struct {
		title string
		exp   ExperienceLevel
	}{
		{"SDE Intern", ExperienceFresher},
		{"Graduate Engineer Trainee", ExperienceFresher},
		{"Junior Backend Developer", Experience0To1},
		{"Frontend Intern", ExperienceFresher},
		{"QA Intern", ExperienceFresher},
		{"Data Analyst Intern", ExperienceFresher},
		{"Java Developer", Experience0To1},
		{"Python Developer", ExperienceFresher},
		{"React Developer", Experience1To3},
		{"Full Stack Engineer", Experience1To3},
		{"DevOps Engineer", Experience3To5},
		{"Product Engineer", Experience1To3},
	}

	mockLocations = []string{
		"Bangalore, Karnataka", "Hyderabad, Telangana", "Pune, Maharashtra",
		"Chennai, Tamil Nadu", "Gurgaon, Haryana", "Noida, UP", "Mumbai, Maharashtra",
		"Remote", "Indore, MP", "Kochi, Kerala",
	}

	mockSkills = []string{
		"React", "Node.js", "Java", "Python", "SQL", "AWS", "Docker", "Kubernetes",
		"TypeScript", "JavaScript", "Spring Boot", "Django", "FastAPI", "MongoDB", "PostgreSQL",
	}

	mockSources = []Source{SourceLinkedIn, SourceNaukri, SourceIndeed}
)

const mockSkillsPerListing = 4

// Generator produces demo listings. The same seed always yields the same listings.
type Generator struct {
	seed uint64
	rnd  *rand.Rand
	// Delay simulates a slow listing source.
	Delay time.Duration
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed, rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns count listings, waiting for Delay first.
func (g *Generator) Generate(ctx context.Context, count int) (*Listings, error) {
	if count <= 0 {
		count = DefaultListingCount
	}
	if err := util.WaitFor(ctx, g.Delay); err != nil {
		return nil, fmt.Errorf("generating listings: %w", err)
	}

	items := make([]*Listing, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, g.listing(i))
	}
	return NewListings(items...), nil
}

func (g *Generator) listing(index int) *Listing {
	role := mockRoles[g.rnd.IntN(len(mockRoles))]
	company := mockCompanies[g.rnd.IntN(len(mockCompanies))]

	remote := g.rnd.Float64() < 0.2
	location := "Remote"
	mode := WorkModeRemote
	if !remote {
		location = mockLocations[g.rnd.IntN(len(mockLocations))]
		mode = WorkModeOnSite
		if g.rnd.Float64() > 0.6 {
			mode = WorkModeHybrid
		}
	}

	posted := g.rnd.IntN(11)
	postedAt := "Today"
	if posted > 0 {
		postedAt = fmt.Sprintf("%d days ago", posted)
	}

	var salary string
	switch {
	case strings.Contains(role.title, "Intern"):
		salary = fmt.Sprintf("₹%dk/month", 15+g.rnd.IntN(25))
	case role.exp == ExperienceFresher || role.exp == Experience0To1:
		salary = fmt.Sprintf("₹%d - %d LPA", 3+g.rnd.IntN(4), 6+g.rnd.IntN(4))
	default:
		salary = fmt.Sprintf("₹%d - %d LPA", 8+g.rnd.IntN(5), 15+g.rnd.IntN(10))
	}

	audience := "experienced professionals"
	if role.exp == ExperienceFresher {
		audience = "fresh graduates"
	}
	description := fmt.Sprintf(`We are looking for a passionate %s to join our team at %s.
You will work on cutting-edge technologies and contribute to scalable products.
This is a fantastic opportunity for %s to grow their career.
Key responsibilities include coding, debugging, and collaborating with cross-functional teams.
Strong problem-solving skills and a willingness to learn are essential.`, role.title, company, audience)

	perm := g.rnd.Perm(len(mockSkills))
	skills := make([]string, 0, mockSkillsPerListing)
	for _, idx := range perm[:mockSkillsPerListing] {
		skills = append(skills, mockSkills[idx])
	}

	tags := append([]string{string(mode), string(role.exp)}, skills...)

	return &Listing{
		ID:            fmt.Sprintf("job-%d-%d", g.seed, index),
		Title:         role.title,
		Company:       company,
		Location:      location,
		WorkMode:      mode,
		Experience:    role.exp,
		Salary:        salary,
		PostedAt:      postedAt,
		PostedDaysAgo: posted,
		Description:   description,
		Skills:        skills,
		Source:        mockSources[g.rnd.IntN(len(mockSources))],
		ApplyURL:      "https://linkedin.com/jobs",
		Tags:          tags,
		IsNew:         posted <= FreshDays,
		Status:        StatusNotApplied,
	}
}
