// Package classify decides what a single line of the directory dump is.
package classify

import (
	"strings"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/extract"
)

// LineKind is the coarse role of a line in the directory.
type LineKind int

const (
	// LineSkip is page furniture: headers, column labels, the print date.
	LineSkip LineKind = iota
	// LineTitled opens with a role title and describes a person.
	LineTitled
	// LineOrgText is anything else; it belongs to the organization block
	// currently being accumulated.
	LineOrgText
)

func (k LineKind) String() string {
	switch k {
	case LineSkip:
		return "skip"
	case LineTitled:
		return "titled"
	case LineOrgText:
		return "org_text"
	}
	return "unknown"
}

// DistrictMarker identifies a district header line.
const DistrictMarker = "Council District"

// boilerplateLines are repeated on every page of the directory.
var boilerplateLines = []string{
	"9/14/2016",
	"THE MARYLAND_NATIONAL CAPITAL PARK AND PLANNING COMMISSION",
	"PRINCE GEORGE'S COUNTY PLANNING DEPARTMENT",
	"REGISTERED ASSOCIATIONS (by Council District)",
	"Address: Ext.Telephone:City:Planning",
	"Area:",
	"State: Email:Organization Name: Zip:Type: Date:",
}

var boilerplate = func() map[string]struct{} {
	m := make(map[string]struct{}, len(boilerplateLines))
	for _, l := range boilerplateLines {
		m[l] = struct{}{}
	}
	return m
}()

// Skip reports whether line is exactly one of the known boilerplate lines.
func Skip(line string) bool {
	_, ok := boilerplate[line]
	return ok
}

// HasTitle reports whether line belongs to a person.
func HasTitle(line string) bool {
	return extract.HasTitle(line)
}

// Classify combines Skip and HasTitle.
func Classify(line string) LineKind {
	switch {
	case Skip(line):
		return LineSkip
	case HasTitle(line):
		return LineTitled
	default:
		return LineOrgText
	}
}

// District returns the district code carried by a "Council District" header,
// or current when line is not a header. The code is two characters: a
// leading two-digit code wins ("05Council District: ..."), then a two-digit
// code printed after the marker ("Council District: 05 ..."), and otherwise
// the first two characters of the line.
func District(line, current string) string {
	if !strings.Contains(line, DistrictMarker) {
		return current
	}
	if len(line) >= 2 && isDigit(line[0]) && isDigit(line[1]) {
		return line[:2]
	}
	rest := line[strings.Index(line, DistrictMarker)+len(DistrictMarker):]
	rest = strings.TrimLeft(rest, ": \t")
	if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
		return rest[:2]
	}
	return firstRunes(line, 2)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func firstRunes(s string, n int) string {
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx]
		}
		i++
	}
	return s
}
