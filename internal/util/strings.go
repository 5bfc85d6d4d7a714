// Package util provides small string helpers shared by the tree codec and
// the command output.
package util

import (
	"strconv"
	"strings"
)

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// QuoteTruncated quotes s for an error message, truncating it to maxLen runes
// first so a malformed document cannot flood the message.
func QuoteTruncated(s string, maxLen int) string {
	return strconv.Quote(TruncateString(s, maxLen))
}

// JoinInts formats values in base 10 and joins them with sep.
func JoinInts(values []int64, sep string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
