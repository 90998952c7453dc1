package search

import (
	"fmt"
	"strings"
)

// FormatList renders one "<id> <username>#<discriminator> (<nickname>)" line per candidate, with ids
// padded to the widest id on the page.
func FormatList(items []Candidate) string {
	width := 0
	for _, c := range items {
		width = max(width, len(c.Identity().ID))
	}
	lines := make([]string, 0, len(items))
	for _, c := range items {
		u := c.Identity()
		line := fmt.Sprintf("%-*s %s", width, u.ID, u.Tag())
		if nick := c.Nickname(); nick != "" {
			line += " (" + nick + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func FormatIDList(items []Candidate) string {
	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.Identity().ID)
	}
	return strings.Join(ids, " ")
}

func Format(items []Candidate, idsOnly bool) string {
	if idsOnly {
		return FormatIDList(items)
	}
	return FormatList(items)
}
