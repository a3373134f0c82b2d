package series

import (
	"regexp"
	"strings"
)

var invalidLabelRunes = regexp.MustCompile(`[^-\w.]`)

// CleanLabel converts label to a form usable as a BIDS label: leading and
// trailing spaces are removed, then spaces, underscores, hyphens and any
// remaining non-alphanumeric runes become dots.
//
//	CleanLabel("Joe's reward_task") == "Joe.s.reward.task"
func CleanLabel(label string) string {
	label = strings.TrimSpace(label)
	for _, special := range []string{" ", "_", "-"} {
		label = strings.ReplaceAll(label, special, ".")
	}
	return invalidLabelRunes.ReplaceAllString(label, ".")
}
