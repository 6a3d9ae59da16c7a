package board

import (
	"regexp"
	"sort"
)

// issueKeyPattern is the shape of a trackable title, e.g. "AB-123".
// Unanchored: "fix AB-12 crash" qualifies.
var issueKeyPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// HasIssueKey reports whether title contains an issue key.
func HasIssueKey(title string) bool {
	return issueKeyPattern.MatchString(title)
}

// Classify builds one lane per status, in the given order. Lanes without
// matching items are kept. Items without an issue key are dropped.
func Classify(statuses []StatusOption, items []Item) []Lane {
	lanes := make([]Lane, 0, len(statuses))

	for _, status := range statuses {
		matched := []Item{}

		for _, item := range items {
			if item.Status != status.Name || !HasIssueKey(item.Title) {
				continue
			}

			matched = append(matched, item)
		}

		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Title < matched[j].Title
		})

		lanes = append(lanes, Lane{Status: status.Name, Items: matched})
	}

	return lanes
}
