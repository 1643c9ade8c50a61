package contact

import (
	"regexp"
	"strings"
)

// spamKeywords is the denylist applied to the message body. Matching is
// case-insensitive and substring-based.
var spamKeywords = []string{
	"viagra",
	"cialis",
	"casino",
	"lottery",
	"jackpot",
	"bitcoin investment",
	"forex signals",
	"work from home",
	"make money fast",
	"free money",
	"click here",
	"limited time offer",
	"100% guaranteed",
	"seo services",
	"buy followers",
}

var urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)

// FilterResult names why a message was rejected, for logging only. The
// visitor never sees the reason.
type FilterResult struct {
	OK     bool
	Reason string
}

// CheckContent runs the spam heuristics over the message body: keyword
// denylist, embedded URLs, and long runs of one character.
func CheckContent(body string) FilterResult {
	lower := strings.ToLower(body)

	for _, kw := range spamKeywords {
		if strings.Contains(lower, kw) {
			return FilterResult{Reason: "keyword: " + kw}
		}
	}

	if urlPattern.MatchString(body) {
		return FilterResult{Reason: "contains URL"}
	}

	if hasRepeatedRun(body, 10) {
		return FilterResult{Reason: "repeated character run"}
	}

	return FilterResult{OK: true}
}

// hasRepeatedRun reports whether s contains n or more identical consecutive
// runes. RE2 has no backreferences, so this is a plain scan.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
