package order

import "strings"

// NormalizeStatus maps an upstream free-text status into the closed set of
// workflow states. Producers disagree on casing and spelling, so matching is
// case-insensitive substring. Every input maps to exactly one state; empty
// and unrecognized values fall back to Pending.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(raw)

	switch {
	case strings.Contains(s, "progress"):
		return StatusInProgress
	case strings.Contains(s, "complete") || strings.Contains(s, "done"):
		return StatusCompleted
	case strings.Contains(s, "cancel") || strings.Contains(s, "reject") || strings.Contains(s, "decline"):
		return StatusCancelled
	default:
		return StatusPending
	}
}
