// Package logutil holds small helpers for log hygiene.
package logutil

// TruncateForLog truncates a string to maxLen characters for safe logging,
// appending "..." when anything was cut. Used for free-text fields like
// message bodies so a single submission cannot flood the log.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
