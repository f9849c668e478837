package notes

import (
	"regexp"
	"strings"
	"unicode"
)

// categoryLabelRe matches an explicit leading "[Category]" label.
var categoryLabelRe = regexp.MustCompile(`(?s)^\[([A-Za-z ]+)\](.+)`)

// Keyword heuristics for unlabeled notes, checked in order.
var (
	preferenceRe = regexp.MustCompile(`(?i)prefer|like|dislike|want|need`)
	scheduleRe   = regexp.MustCompile(`(?i)schedule|every|daily|weekly|monthly`)
)

// taskPhraseRes holds the phrasings that mark text as belonging in the
// task database rather than the notebook.
var taskPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)complete[d]? task`),
	regexp.MustCompile(`(?i)task.*complete[d]?`),
	regexp.MustCompile(`(?i)finish(ed)? task`),
	regexp.MustCompile(`(?i)task.*done`),
	regexp.MustCompile(`(?i)added.*task`),
	regexp.MustCompile(`(?i)created.*task`),
	regexp.MustCompile(`(?i)marked.*complete`),
	regexp.MustCompile(`(?i)due date`),
	regexp.MustCompile(`(?i)deadline`),
	regexp.MustCompile(`(?i)todo`),
	regexp.MustCompile(`(?i)to-do`),
	regexp.MustCompile(`(?i)to do`),
}

// Classify derives a category and cleaned content from raw note text.
// An explicit "[Label]" prefix wins verbatim (title-cased); otherwise the
// keyword heuristics pick Preference, then Schedule, then Observation.
func Classify(raw string) (category, content string) {
	text := strings.TrimSpace(raw)

	if m := categoryLabelRe.FindStringSubmatch(text); m != nil {
		return titleCase(strings.TrimSpace(m[1])), strings.TrimSpace(m[2])
	}

	switch {
	case preferenceRe.MatchString(text):
		category = "Preference"
	case scheduleRe.MatchString(text):
		category = "Schedule"
	default:
		category = "Observation"
	}
	return category, text
}

// IsTaskRelated reports whether text reads like task bookkeeping
// (completions, deadlines, todos) that the write path must reject.
func IsTaskRelated(text string) bool {
	for _, re := range taskPhraseRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each word. The label grammar
// is ASCII letters and spaces, so no locale handling is needed.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
