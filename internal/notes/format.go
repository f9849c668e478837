package notes

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Filter narrows a note list for reads. Zero values mean "no constraint".
type Filter struct {
	Category string
	Contains string
	DaysAgo  int
}

// Apply returns the notes matching the filter, newest-first. It works on
// an already-loaded list so both backends share one read path.
func (f Filter) Apply(list []Note) []Note {
	cutoff := time.Time{}
	if f.DaysAgo > 0 {
		cutoff = time.Now().AddDate(0, 0, -f.DaysAgo)
	}

	var out []Note
	for _, n := range list {
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.Contains != "" && !strings.Contains(strings.ToLower(n.Content), strings.ToLower(f.Contains)) {
			continue
		}
		if !cutoff.IsZero() {
			ts, err := time.Parse(time.RFC3339, n.Timestamp)
			if err != nil || ts.Before(cutoff) {
				continue
			}
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return noteTime(out[i]).After(noteTime(out[j]))
	})
	return out
}

// noteTime parses a note's timestamp for ordering. Comparing the parsed
// instants keeps backdated notes written with different UTC offsets in
// true order; unparseable stamps sort last.
func noteTime(n Note) time.Time {
	t, err := time.Parse(time.RFC3339, n.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatByCategory renders notes grouped under "### Category" headers.
// The input must be newest-first; groups then appear in order of their
// most recent note, and stay newest-first within. Empty input formats as
// an empty string.
func FormatByCategory(list []Note) string {
	if len(list) == 0 {
		return ""
	}

	var order []string
	groups := make(map[string][]Note)
	for _, n := range list {
		if _, ok := groups[n.Category]; !ok {
			order = append(order, n.Category)
		}
		groups[n.Category] = append(groups[n.Category], n)
	}

	var b strings.Builder
	for _, cat := range order {
		fmt.Fprintf(&b, "### %s\n", cat)
		for _, n := range groups[cat] {
			fmt.Fprintf(&b, "- [%s] %s\n", shortDate(n.Timestamp), n.Content)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// shortDate reduces an ISO-8601 timestamp to its date part for display.
func shortDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
