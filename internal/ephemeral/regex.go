package ephemeral

import (
	"regexp"
	"strings"
)

var stackFrameRE = regexp.MustCompile(`(?m)(^\s*at\s+\S+\(.*\)\s*$)|(^Traceback \(most recent call last\):)|(^\s*File "[^"]+", line \d+)|(panic:.*\n.*goroutine)`)

func stackTraceTest(_, _, _, content string) (string, bool) {
	if stackFrameRE.MatchString(content) {
		return "Stack trace: matched a frame pattern", true
	}
	return "", false
}

var codeFenceRE = regexp.MustCompile("```")
var indentedBlockRE = regexp.MustCompile(`(?m)^(    |\t).+\n(    |\t).+`)

func verbatimCodeTest(_, _, _, content string) (string, bool) {
	if codeFenceRE.MatchString(content) {
		return "Verbatim code: fenced code block", true
	}
	if indentedBlockRE.MatchString(content) {
		return "Verbatim code: indented block", true
	}
	return "", false
}

var versionPinnedRE = regexp.MustCompile(`(?i)\b(as of |currently on |pinned to |latest is )?v?\d+\.\d+(\.\d+)?\b`)

func versionPinnedTest(lowerTitle, lowerContent, _, _ string) (string, bool) {
	haystack := lowerTitle + " " + lowerContent
	if m := versionPinnedRE.FindString(haystack); m != "" && (containsAny(haystack, "as of", "currently on", "pinned to", "latest")) {
		return "Version-pinned: \"" + m + "\"", true
	}
	return "", false
}

var metricsChangeRE = regexp.MustCompile(`\b\d+(\.\d+)?%|\bfrom \d+ to \d+\b|\bincreased (by|to)\b|\bdropped (by|to)\b`)

func metricsChangeTest(lowerTitle, lowerContent, _, _ string) (string, bool) {
	haystack := lowerTitle + " " + lowerContent
	if m := metricsChangeRE.FindString(haystack); m != "" {
		return "Point-in-time metric: \"" + m + "\"", true
	}
	return "", false
}

const tooShortThreshold = 30

func tooShortTest(_, _, _, content string) (string, bool) {
	if len(content) < tooShortThreshold {
		return "Content is very short", true
	}
	return "", false
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
