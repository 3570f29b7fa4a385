// Package diff computes line-by-line differences between two prompt
// versions. Alignment delegates to the difflib SequenceMatcher port with
// the junk heuristic disabled; prompts are short and repetitive enough
// to defeat it.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a single line within a diff.
type Kind string

const (
	Added     Kind = "added"
	Removed   Kind = "removed"
	Unchanged Kind = "unchanged"
)

// Line is one annotated line of a computed diff. LeftNumber and
// RightNumber are 1-based; zero means the line does not exist on that
// side. Unchanged lines carry both numbers, removed lines only the
// left, added lines only the right.
type Line struct {
	Kind        Kind
	Text        string
	LeftNumber  int
	RightNumber int
}

// Summary holds aggregate statistics for a completed diff.
type Summary struct {
	Added     int
	Removed   int
	Unchanged int
}

// Total returns the number of lines across both sides.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Unchanged
}

// IsIdentical reports whether the two versions differ at all.
func (s Summary) IsIdentical() bool {
	return s.Added == 0 && s.Removed == 0
}

// Compute compares two prompt texts and returns an annotated diff in
// reading order. Within a replaced block every removed line precedes
// every added line; renderers rely on that ordering.
func Compute(left, right string) []Line {
	linesLeft := splitLines(left)
	linesRight := splitLines(right)

	matcher := difflib.NewMatcherWithJunk(linesLeft, linesRight, false, nil)

	var result []Line
	numLeft, numRight := 1, 1

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range linesLeft[op.I1:op.I2] {
				result = append(result, Line{Unchanged, line, numLeft, numRight})
				numLeft++
				numRight++
			}
		case 'r':
			for _, line := range linesLeft[op.I1:op.I2] {
				result = append(result, Line{Removed, line, numLeft, 0})
				numLeft++
			}
			for _, line := range linesRight[op.J1:op.J2] {
				result = append(result, Line{Added, line, 0, numRight})
				numRight++
			}
		case 'd':
			for _, line := range linesLeft[op.I1:op.I2] {
				result = append(result, Line{Removed, line, numLeft, 0})
				numLeft++
			}
		case 'i':
			for _, line := range linesRight[op.J1:op.J2] {
				result = append(result, Line{Added, line, 0, numRight})
				numRight++
			}
		}
	}

	return result
}

// Summarize counts lines by kind in a single pass.
func Summarize(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		switch l.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}

// splitLines splits text into lines, trimming only trailing CR/LF so a
// trailing-newline difference never shows up as a spurious change.
// Internal whitespace is preserved. Empty input yields zero lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	// A trailing newline produces a final empty element, not a line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
