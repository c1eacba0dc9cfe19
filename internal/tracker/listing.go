package tracker

import (
	"fmt"
	"strings"
)

// Status is the application state of a listing. Any status may follow any other.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusInterview  Status = "Interview"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotApplied, StatusApplied, StatusInterview, StatusRejected, StatusSelected}

// ParseStatus matches s against the known statuses, ignoring case and surrounding spaces.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Source is the job board a listing came from.
type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceNaukri   Source = "Naukri"
	SourceIndeed   Source = "Indeed"
)

// WorkMode is where the work happens.
type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeOnSite WorkMode = "On-site"
)

// WorkModes lists every work mode.
var WorkModes = []WorkMode{WorkModeRemote, WorkModeHybrid, WorkModeOnSite}

// ExperienceLevel is an experience band. Bands are ordered from junior to senior.
type ExperienceLevel string

const (
	ExperienceFresher ExperienceLevel = "Fresher"
	Experience0To1    ExperienceLevel = "0-1"
	Experience1To3    ExperienceLevel = "1-3"
	Experience3To5    ExperienceLevel = "3-5"
	Experience5Plus   ExperienceLevel = "5+"
)

// ExperienceLevels lists every band in order.
var ExperienceLevels = []ExperienceLevel{ExperienceFresher, Experience0To1, Experience1To3, Experience3To5, Experience5Plus}

// ParseExperienceLevel matches s against the known bands, ignoring case.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	s = strings.TrimSpace(s)
	for _, lvl := range ExperienceLevels {
		if strings.EqualFold(s, string(lvl)) {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// Listing is a job posting. Everything except Status and MatchScore is fixed
// once generated.
type Listing struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Company       string          `json:"company"`
	Location      string          `json:"location"`
	WorkMode      WorkMode        `json:"type"`
	Experience    ExperienceLevel `json:"experience"`
	Salary        string          `json:"salary"`
	PostedAt      string          `json:"postedAt"`
	PostedDaysAgo int             `json:"postedDaysAgo"`
	Description   string          `json:"description"`
	Skills        []string        `json:"skills"`
	Source        Source          `json:"source"`
	ApplyURL      string          `json:"applyUrl"`
	Tags          []string        `json:"tags"`
	IsNew         bool            `json:"isNew"`
	MatchScore    int             `json:"matchScore"`
	Status        Status          `json:"status"`
}

// Listings is an ordered working set of listings.
type Listings struct {
	Items []*Listing `json:"items"`
}

// NewListings wraps items.
func NewListings(items ...*Listing) *Listings {
	return &Listings{Items: items}
}

func (l *Listings) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// FindByID returns the listing with id or nil.
func (l *Listings) FindByID(id string) *Listing {
	for _, item := range l.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Retain keeps the listings keep accepts, preserving order, and returns the
// ids of the dropped ones.
func (l *Listings) Retain(keep func(*Listing) bool) []string {
	var dropped []string
	kept := l.Items[:0]
	for _, item := range l.Items {
		if keep(item) {
			kept = append(kept, item)
			continue
		}
		dropped = append(dropped, item.ID)
	}
	clear(l.Items[len(kept):])
	l.Items = kept
	return dropped
}

// Clone returns a shallow copy whose slice can be filtered and sorted without
// touching l.
func (l *Listings) Clone() *Listings {
	out := &Listings{Items: make([]*Listing, 0, l.Len())}
	if l != nil {
		out.Items = append(out.Items, l.Items...)
	}
	return out
}

// ApplyStatuses sets the status of every listing from statuses, defaulting to Not Applied.
func (l *Listings) ApplyStatuses(statuses map[string]Status) {
	for _, item := range l.Items {
		if st, ok := statuses[item.ID]; ok {
			item.Status = st
			continue
		}
		item.Status = StatusNotApplied
	}
}

// ReportByCompany groups short listing summaries by company.
func (l *Listings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range l.Items {
		report[item.Company] = append(report[item.Company], map[string]string{
			"id":       item.ID,
			"title":    item.Title,
			"location": item.Location,
			"salary":   item.Salary,
			"score":    fmt.Sprintf("%d", item.MatchScore),
			"status":   string(item.Status),
		})
	}
	return report
}
