// Package domain contains input parsing for form fields
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseResult is the outcome of parsing one piece of user input.
// Exactly one of Value or Err is meaningful.
type ParseResult[T any] struct {
	Value T
	Err   error
}

// OK reports whether parsing succeeded
func (r ParseResult[T]) OK() bool {
	return r.Err == nil
}

// Get returns the parsed value and error as a pair
func (r ParseResult[T]) Get() (T, error) {
	return r.Value, r.Err
}

// ParseError describes input that could not be turned into a field value
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// ParseInt parses a whole number. Surrounding blanks are ignored.
func ParseInt(input string) ParseResult[int] {
	s := strings.TrimSpace(input)
	if s == "" {
		return ParseResult[int]{Err: &ParseError{Input: input, Reason: "a number is required"}}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return ParseResult[int]{Err: &ParseError{Input: input, Reason: "not a whole number"}}
	}
	return ParseResult[int]{Value: v}
}

// ParseFloat parses a finite decimal number. NaN and infinities are rejected.
func ParseFloat(input string) ParseResult[float64] {
	s := strings.TrimSpace(input)
	if s == "" {
		return ParseResult[float64]{Err: &ParseError{Input: input, Reason: "a number is required"}}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ParseResult[float64]{Err: &ParseError{Input: input, Reason: "not a number"}}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ParseResult[float64]{Err: &ParseError{Input: input, Reason: "must be finite"}}
	}
	return ParseResult[float64]{Value: v}
}

// ParseIntInRange parses a whole number and checks it lies in [lo, hi]
func ParseIntInRange(input string, lo, hi int) ParseResult[int] {
	res := ParseInt(input)
	if !res.OK() {
		return res
	}
	if res.Value < lo || res.Value > hi {
		return ParseResult[int]{Err: &ParseError{
			Input:  input,
			Reason: fmt.Sprintf("must be between %d and %d", lo, hi),
		}}
	}
	return res
}

// ParseImporter accepts either the importer number or its name
func ParseImporter(input string) ParseResult[Importer] {
	s := strings.TrimSpace(input)
	for _, imp := range Importers() {
		if strings.EqualFold(s, imp.String()) || s == strconv.Itoa(int(imp)) {
			return ParseResult[Importer]{Value: imp}
		}
	}
	return ParseResult[Importer]{Err: &ParseError{Input: input, Reason: "expected Matlab (0) or Magcad (1)"}}
}
