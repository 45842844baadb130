// Package compare decides whether program output matches the expected
// answer. Comparators are pure and safe for concurrent use.
package compare

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Mode string

const (
	Exact      Mode = "exact"
	Whitespace Mode = "whitespace"
	Numeric    Mode = "numeric"
)

const DefaultEpsilon = 1e-6

type Comparator interface {
	Compare(expected, actual []byte) bool
}

// ParseMode validates a mode name. The empty string selects Whitespace.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Whitespace, nil
	case Exact, Whitespace, Numeric:
		return m, nil
	}
	return "", fmt.Errorf("unknown comparison mode %q", s)
}

// New builds the comparator for mode. The epsilons only matter for
// Numeric; non-positive values disable that bound.
func New(mode Mode, absEps, relEps float64) (Comparator, error) {
	switch mode {
	case Exact:
		return ExactComparator{}, nil
	case Whitespace, "":
		return WhitespaceComparator{}, nil
	case Numeric:
		return NumericComparator{AbsEpsilon: absEps, RelEpsilon: relEps}, nil
	}
	return nil, fmt.Errorf("unknown comparison mode %q", mode)
}

// ExactComparator requires byte equality.
type ExactComparator struct{}

func (ExactComparator) Compare(expected, actual []byte) bool {
	return bytes.Equal(expected, actual)
}

// WhitespaceComparator compares line by line. Within a line runs of
// whitespace are equivalent to one space and leading or trailing
// whitespace is ignored; trailing blank lines are ignored.
type WhitespaceComparator struct{}

func (WhitespaceComparator) Compare(expected, actual []byte) bool {
	el := normalizedLines(expected)
	al := normalizedLines(actual)
	if len(el) != len(al) {
		return false
	}
	for i := range el {
		if el[i] != al[i] {
			return false
		}
	}
	return true
}

func normalizedLines(b []byte) []string {
	lines := strings.Split(string(b), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NumericComparator compares whitespace separated tokens. Tokens that
// parse as numbers on both sides match when they are within either
// epsilon; all others must be identical.
type NumericComparator struct {
	AbsEpsilon float64
	RelEpsilon float64
}

func (c NumericComparator) Compare(expected, actual []byte) bool {
	et := strings.Fields(string(expected))
	at := strings.Fields(string(actual))
	if len(et) != len(at) {
		return false
	}
	for i := range et {
		if et[i] == at[i] {
			continue
		}
		e, err1 := strconv.ParseFloat(et[i], 64)
		a, err2 := strconv.ParseFloat(at[i], 64)
		if err1 != nil || err2 != nil {
			return false
		}
		if !c.close(e, a) {
			return false
		}
	}
	return true
}

func (c NumericComparator) close(e, a float64) bool {
	if math.IsNaN(e) || math.IsNaN(a) {
		return math.IsNaN(e) && math.IsNaN(a)
	}
	if math.IsInf(e, 0) || math.IsInf(a, 0) {
		return e == a
	}
	diff := math.Abs(e - a)
	if c.AbsEpsilon > 0 && diff <= c.AbsEpsilon {
		return true
	}
	if c.RelEpsilon > 0 && diff <= c.RelEpsilon*math.Abs(e) {
		return true
	}
	return diff == 0
}
