// Package segment splits text into the units that edit distance is measured
// over: Unicode code points or extended grapheme clusters.
package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Mode selects how text is split into comparison units.
type Mode int

const (
	// CodePoint yields one unit per Unicode scalar value.
	CodePoint Mode = iota
	// Grapheme yields one unit per user-perceived character (UAX #29).
	Grapheme
)

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case CodePoint:
		return "codepoint"
	case Grapheme:
		return "grapheme"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a user-supplied mode name into a Mode.
// Matching is case-insensitive; "char" is accepted as an alias of codepoint.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "codepoint", "code-point", "char":
		return CodePoint, nil
	case "grapheme", "graphemes":
		return Grapheme, nil
	default:
		return CodePoint, fmt.Errorf("unknown segmentation mode %q (valid: %s)", s, strings.Join(ValidModes(), ", "))
	}
}

// ValidModes returns the canonical mode names.
func ValidModes() []string {
	return []string{CodePoint.String(), Grapheme.String()}
}

// Runes splits text into code points. Each byte that is not part of a valid
// UTF-8 sequence becomes its own unit, distinct from every code point and
// from other invalid bytes, so "\xff" and "\xfe" still differ.
func Runes(text string) []rune {
	if !utf8.ValidString(text) {
		return runesWithInvalid(text)
	}
	return []rune(text)
}

func runesWithInvalid(text string) []rune {
	units := make([]rune, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			r = invalidByte(text[i])
		}
		units = append(units, r)
		i += size
	}
	return units
}

// invalidByte maps a stray byte to a negative rune, outside the range of
// any Unicode scalar value.
func invalidByte(b byte) rune {
	return -1 - rune(b)
}

// Graphemes splits text into extended grapheme clusters.
func Graphemes(text string) []string {
	if text == "" {
		return nil
	}
	units := make([]string, 0, utf8.RuneCountInString(text))
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		units = append(units, cluster)
	}
	return units
}

// Segment splits text under mode and returns every unit as a string.
// Distance computations use Runes or Graphemes directly; Segment exists for
// callers that want to display or inspect the units.
func Segment(text string, mode Mode) []string {
	if mode == Grapheme {
		return Graphemes(text)
	}
	if text == "" {
		return nil
	}
	units := make([]string, 0, utf8.RuneCountInString(text))
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		units = append(units, text[i:i+size])
		i += size
	}
	return units
}

// Len returns the number of units text splits into under mode.
func Len(text string, mode Mode) int {
	if mode == Grapheme {
		return uniseg.GraphemeClusterCount(text)
	}
	return utf8.RuneCountInString(text)
}
