package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/youssefsiam38/ctxzip/adapter"
)

// DefaultMaxMatches caps the number of lines a search returns.
const DefaultMaxMatches = 100

// Match is a single line matching a search pattern.
type Match struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
}

// String renders the match in grep-style "line: content" form.
func (m Match) String() string {
	return fmt.Sprintf("%d: %s", m.LineNumber, m.Content)
}

// CompilePattern compiles a regex pattern with an optional flag string.
// Supported flags are "i" (case-insensitive), "m" (multi-line anchors) and
// "s" (dot matches newline); unknown flag characters are ignored.
func CompilePattern(pattern, flags string) (*regexp.Regexp, error) {
	var mode strings.Builder
	for _, f := range []string{"i", "m", "s"} {
		if strings.Contains(flags, f) {
			mode.WriteString(f)
		}
	}
	if mode.Len() > 0 {
		pattern = "(?" + mode.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}

// SearchText scans text line by line and returns up to maxMatches lines
// matching the pattern, with 1-based line numbers. A maxMatches of zero or
// less applies DefaultMaxMatches.
func SearchText(text string, re *regexp.Regexp, maxMatches int) []Match {
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}

	var matches []Match
	for i, line := range strings.Split(text, "\n") {
		if re.MatchString(line) {
			matches = append(matches, Match{LineNumber: i + 1, Content: line})
			if len(matches) >= maxMatches {
				break
			}
		}
	}
	return matches
}

// SearchObject reads the content stored under key and searches it line by
// line. JSON content is re-normalized to pretty-printed form first so that
// structured payloads search meaningfully regardless of how they were
// serialized.
func SearchObject(ctx context.Context, a adapter.Adapter, key string, re *regexp.Regexp, maxMatches int) ([]Match, error) {
	content, err := a.ReadText(ctx, adapter.ReadParams{Key: key})
	if err != nil {
		return nil, err
	}

	if body := []byte(content); json.Valid(body) {
		content = string(pretty.Pretty(body))
	}

	return SearchText(content, re, maxMatches), nil
}
