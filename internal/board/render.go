package board

import (
	"regexp"
	"strconv"
	"strings"
)

// StatusRule maps a status name containing Keyword (any case) to Tag.
type StatusRule struct {
	Keyword string
	Tag     string
}

// StatusRules are evaluated top to bottom; the first match wins.
var StatusRules = []StatusRule{
	{Keyword: "To do", Tag: "todo"},
	{Keyword: "In progress", Tag: "wip"},
	{Keyword: "Review", Tag: "in review"},
	{Keyword: "QA", Tag: "qa"},
	{Keyword: "Wait", Tag: "wait:"},
}

// UnknownStatusTag is used when no rule matches.
const UnknownStatusTag = "unknown"

var (
	fixVersionPattern = regexp.MustCompile(`v\d+\.\d+`)

	// low/high, optionally as -est/-er, not glued to other letters, so
	// "Highest" counts and "lowercase" stays out.
	priorityPattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(low|high)(?:est|er)?(?:[^a-z]|$)`)
)

// StatusTag returns the short tag for a lane status.
func StatusTag(status string) string {
	lower := strings.ToLower(status)

	for _, rule := range StatusRules {
		if strings.Contains(lower, strings.ToLower(rule.Keyword)) {
			return rule.Tag
		}
	}

	return UnknownStatusTag
}

// FixVersion extracts "vX.Y" from the milestone title, or "".
func FixVersion(m *Milestone) string {
	if m == nil {
		return ""
	}

	return fixVersionPattern.FindString(m.Title)
}

// Priority returns "low" or "high" as spelled in the first label that
// carries one, or "".
func Priority(labels []Label) string {
	for _, label := range labels {
		match := priorityPattern.FindStringSubmatch(label.Name)
		if match != nil {
			return match[1]
		}
	}

	return ""
}

// FormatItem renders one bullet line.
func FormatItem(statusTag string, item Item) string {
	var builder strings.Builder

	builder.WriteString("- [")
	builder.WriteString(statusTag)
	builder.WriteString("] ")

	if priority := Priority(item.Labels); priority != "" {
		builder.WriteString(priority)
		builder.WriteString(" ")
	}

	builder.WriteString(item.Title)

	if version := FixVersion(item.Milestone); version != "" {
		builder.WriteString(" (")
		builder.WriteString(version)
		builder.WriteString(")")
	}

	return builder.String()
}

// Lines renders lanes as text lines: a header, a blank line, the
// bullets, then two blank lines per lane.
func Lines(lanes []Lane) []string {
	var out []string

	for _, lane := range lanes {
		tag := StatusTag(lane.Status)

		out = append(out, "## "+lane.Status+" ("+strconv.Itoa(len(lane.Items))+")", "")

		for _, item := range lane.Items {
			out = append(out, FormatItem(tag, item))
		}

		out = append(out, "", "")
	}

	return out
}

// Render joins [Lines] with newlines.
func Render(lanes []Lane) string {
	return strings.Join(Lines(lanes), "\n")
}
