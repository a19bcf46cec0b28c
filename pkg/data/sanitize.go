package data

import (
	"regexp"
	"strings"
)

var newlineRun = regexp.MustCompile(`\n+`)

// Normalize trims the answer and collapses every run of newlines into one.
func Normalize(ans string) string {
	return newlineRun.ReplaceAllString(strings.TrimSpace(ans), "\n")
}

// Lines splits a normalized answer into its lines. An empty answer yields a
// single empty line.
func Lines(ans string) []string {
	return strings.Split(Normalize(ans), "\n")
}
