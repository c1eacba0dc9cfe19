package textmatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContainsKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		haystack string
		needle   string
		expect   bool
	}{
		{name: "case insensitive", haystack: "Senior React Developer", needle: "react", expect: true},
		{name: "substring", haystack: "Bangalore, Karnataka", needle: "BANGALORE", expect: true},
		{name: "absent", haystack: "Java Developer", needle: "python", expect: false},
		{name: "empty haystack", haystack: "", needle: "go", expect: false},
		{name: "blank needle", haystack: "anything", needle: "  ", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ContainsKeyword(tt.haystack, tt.needle); got != tt.expect {
				t.Fatalf("ContainsKeyword(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.expect)
			}
		})
	}
}

func TestAnyMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		haystack string
		needles  []string
		expect   bool
	}{
		{name: "nil needles", haystack: "react", needles: nil, expect: false},
		{name: "empty needles", haystack: "react", needles: []string{}, expect: false},
		{name: "only blank needles", haystack: "react", needles: []string{"", " "}, expect: false},
		{name: "empty haystack", haystack: "", needles: []string{"react"}, expect: false},
		{name: "second needle matches", haystack: "Node.js backend", needles: []string{"java", "NODE"}, expect: true},
		{name: "no needle matches", haystack: "Node.js backend", needles: []string{"java", "rust"}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AnyMatch(tt.haystack, tt.needles); got != tt.expect {
				t.Fatalf("AnyMatch(%q, %v) = %v, want %v", tt.haystack, tt.needles, got, tt.expect)
			}
		})
	}
}

func TestMatchedKeywords(t *testing.T) {
	t.Parallel()

	got := MatchedKeywords("We use React, Node.js and REACT Native", []string{"react", "node.js", "React", "vue", ""})
	if diff := cmp.Diff([]string{"react", "node.js"}, got); diff != "" {
		t.Fatalf("matched keywords mismatch (-want +got):\n%s", diff)
	}

	if got := MatchedKeywords("", []string{"go"}); len(got) != 0 {
		t.Fatalf("expected no matches for empty text, got %v", got)
	}
}

func TestAnyEqual(t *testing.T) {
	t.Parallel()

	if !AnyEqual("remote", []string{"Hybrid", "Remote"}) {
		t.Fatalf("expected case-insensitive equality")
	}
	if AnyEqual("Remote", []string{"Remote-first"}) {
		t.Fatalf("equality must not fall back to substring matching")
	}
	if AnyEqual("Remote", nil) {
		t.Fatalf("expected false for no candidates")
	}
}

func TestTitleWords(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"data structures": "Data Structures",
		"node.js":         "Node.js",
		"ci/cd":           "Ci/cd",
		"c++":             "C++",
		"":                "",
		"rest  api":       "Rest  Api",
	}

	for input, expect := range tests {
		if got := TitleWords(input); got != expect {
			t.Fatalf("TitleWords(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	html := `<html><head><style>p{color:red}</style></head><body>
<h2>About&nbsp;the role</h2>
<p>We build   <b>React</b> apps.</p>
<ul><li>Docker</li><li>AWS</li></ul>
<script>alert("x")</script>
</body></html>`

	got, err := PlainText(html)
	if err != nil {
		t.Fatalf("PlainText error: %v", err)
	}

	expect := "About the role\nWe build React apps.\nDocker\nAWS"
	if got != expect {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", got, expect)
	}
}
