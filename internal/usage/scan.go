package usage

import (
	"regexp"
	"strings"
)

// tagSubs is the fixed, enumerated substitution table for structural tags
// inside a documentation block. This is not general markup parsing; only
// the tags listed here are understood, anything else is stripped.
var tagSubs = []struct {
	tag   string
	label string
}{
	{"@file", ""},
	{"@brief", ""},
	{"@details", ""},
	{"@author", "author: "},
	{"@note", "note:\n"},
	{"@remarks", "remarks:\n"},
	{"@since", "since:\n"},
	{"@test", "test:\n"},
	{"@todo", "todo:\n"},
	{"@warning", "warning:\n"},
	{"@pre", "pre condition:\n"},
	{"@post", "post condition:\n"},
}

var (
	fileMarker    = regexp.MustCompile(`^#+\s*@file\b`)
	commentPrefix = regexp.MustCompile(`^#+\s?`)
	leftoverTag   = regexp.MustCompile(`@[a-zA-Z]+\s?`)
)

// ExtractOverview scans annotated doc text for the documentation block
// opening at the `@file` marker and ending at the first blank line, and
// returns it as plain prose: comment prefixes stripped, structural tags
// translated via the substitution table, unknown tags dropped. An empty
// string means no documentation block was found.
func ExtractOverview(doc string) string {
	var out []string
	inBlock := false

	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if !inBlock {
			if fileMarker.MatchString(line) {
				inBlock = true
			} else {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		out = append(out, translate(line))
	}

	return strings.Join(out, "\n")
}

// translate turns one documentation line into prose.
func translate(line string) string {
	line = commentPrefix.ReplaceAllString(line, "")
	for _, sub := range tagSubs {
		line = strings.ReplaceAll(line, sub.tag+" ", sub.label)
		line = strings.ReplaceAll(line, sub.tag, strings.TrimRight(sub.label, " "))
	}
	line = leftoverTag.ReplaceAllString(line, "")
	return strings.TrimRight(line, " ")
}
