// Package sport holds the sports vocabulary shared by profiles and matches.
package sport

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Sport is one of the sports a match can be organized for.
type Sport string

const (
	Football Sport = "Fútbol 5"
	Padel    Sport = "Pádel"
	Tennis   Sport = "Tenis"
)

// All lists the supported sports in display order.
var All = []Sport{Football, Padel, Tennis}

// Valid reports whether s is a supported sport.
func (s Sport) Valid() bool {
	switch s {
	case Football, Padel, Tennis:
		return true
	}
	return false
}

// PadelLadder is the ordered list of padel categories, strongest first.
var PadelLadder = []string{"1ra", "2da", "3ra", "4ta", "5ta", "6ta", "7ma", "8va"}

// IsPadelCategory reports whether label is on the padel ladder.
func IsPadelCategory(label string) bool {
	for _, c := range PadelLadder {
		if c == label {
			return true
		}
	}
	return false
}

// ParseCategory returns the leading integer of a category label ("6ta" -> 6).
func ParseCategory(label string) (int, error) {
	label = strings.TrimSpace(label)
	end := strings.IndexFunc(label, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(label)
	}
	if end == 0 {
		return 0, fmt.Errorf("category %q has no leading number", label)
	}
	return strconv.Atoi(label[:end])
}
