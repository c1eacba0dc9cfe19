package tracker

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spigell/hirekit/internal/records"
)

// NormalizePreference decodes a stored preference. Missing fields take their
// defaults; unusable input yields DefaultPreference and ok false.
func NormalizePreference(raw []byte) (pref Preference, ok bool) {
	pref = DefaultPreference()
	if len(raw) == 0 {
		return pref, true
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return DefaultPreference(), false
	}
	if err := records.Decode(fields, &pref); err != nil {
		return DefaultPreference(), false
	}

	pref.RoleKeywords = cleanList(pref.RoleKeywords)
	pref.Locations = cleanList(pref.Locations)
	pref.WorkModes = cleanList(pref.WorkModes)
	pref.Skills = cleanList(pref.Skills)

	ok = true
	lvl, err := ParseExperienceLevel(string(pref.ExperienceLevel))
	if err != nil {
		lvl, ok = ExperienceFresher, false
	}
	pref.ExperienceLevel = lvl
	pref.MinMatchScore = max(0, min(pref.MinMatchScore, MaxScore))

	return pref, ok
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeStatuses decodes the id to status map, dropping unknown statuses.
func NormalizeStatuses(raw []byte) (map[string]Status, bool) {
	out := make(map[string]Status)
	if len(raw) == 0 {
		return out, true
	}

	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		return out, false
	}

	ok := true
	for id, v := range stored {
		s, isString := v.(string)
		st, err := ParseStatus(s)
		if !isString || err != nil {
			ok = false
			continue
		}
		out[id] = st
	}
	return out, ok
}

// HistoryEntry records one status change.
type HistoryEntry struct {
	JobID   string    `json:"jobId" mapstructure:"jobId"`
	Title   string    `json:"title" mapstructure:"title"`
	Company string    `json:"company" mapstructure:"company"`
	Status  Status    `json:"status" mapstructure:"status"`
	Date    time.Time `json:"date" mapstructure:"date"`
}

// NormalizeHistory decodes the status history, skipping unusable entries.
func NormalizeHistory(raw []byte) ([]HistoryEntry, bool) {
	out := []HistoryEntry{}
	if len(raw) == 0 {
		return out, true
	}

	var stored []json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		return out, false
	}

	ok := true
	for _, item := range stored {
		var e HistoryEntry
		if err := json.Unmarshal(item, &e); err != nil || e.JobID == "" {
			ok = false
			continue
		}
		st, err := ParseStatus(string(e.Status))
		if err != nil {
			ok = false
			continue
		}
		e.Status = st
		out = append(out, e)
	}
	return out, ok
}

// NormalizeListings decodes a stored working set. Both a bare array and the
// {"items": [...]} object are accepted.
func NormalizeListings(raw []byte) (*Listings, bool) {
	if len(raw) == 0 {
		return NewListings(), true
	}

	var items []*Listing
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped Listings
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return NewListings(), false
		}
		items = wrapped.Items
	}

	out := make([]*Listing, 0, len(items))
	ok := true
	for _, item := range items {
		if item == nil || item.ID == "" {
			ok = false
			continue
		}
		if item.Skills == nil {
			item.Skills = []string{}
		}
		out = append(out, item)
	}
	return NewListings(out...), ok
}
