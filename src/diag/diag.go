// Package diag defines the shared diagnostic report format used by the
// lexer, parser and semantic walker (spec.md §6): one "Error type <A|B> at
// Line <N>: <message>" line per diagnostic, sorted in ascending line order
// and, within a line, in order of discovery.
package diag

import (
	"fmt"
	"sort"
)

// Class differentiates the two diagnostic classes of spec.md §6.
type Class int

const (
	// ClassA is the lexical class: an unknown lexeme.
	ClassA Class = iota
	// ClassB is the syntactic/semantic class: missing token, type
	// mismatch, redefinition, and so on.
	ClassB
)

// String renders the class letter used in the report format.
func (c Class) String() string {
	if c == ClassA {
		return "A"
	}
	return "B"
}

// Diagnostic is one reported error, stamped with the 1-based source line
// it was discovered on (spec.md §6: "line 0 is normalised to line 1").
type Diagnostic struct {
	Class Class
	Line  int
	Msg   string
}

// New builds a Diagnostic, normalising line <= 0 to line 1.
func New(class Class, line int, format string, args ...interface{}) Diagnostic {
	if line <= 0 {
		line = 1
	}
	return Diagnostic{Class: class, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Error renders the diagnostic in the spec.md §6 report format.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("Error type %s at Line %d: %s", d.Class, d.Line, d.Msg)
}

// Bag accumulates diagnostics in discovery order and sorts them for
// reporting. Only one phase writes to a Bag at a time (spec.md §5:
// analysis is single-threaded and sequential), so no locking is needed;
// the accumulate-then-sort shape mirrors the teacher's perror accumulator
// (src/util/perror.go) minus its channel plumbing.
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any diagnostic has been recorded.
func (b *Bag) HasErrors() bool { return len(b.items) > 0 }

// Sorted returns the accumulated diagnostics ordered by ascending line,
// preserving discovery order for equal lines (sort.SliceStable), per
// spec.md §8 invariant 5.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
