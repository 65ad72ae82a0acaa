package among

import (
	"slices"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxMarks is the number of region marks an Env can hold.
const MaxMarks = 4

// Mark names a region boundary stored in an Env. The zero Mark is reserved
// and means "no mark".
type Mark int

// NoMark is the zero Mark.
const NoMark Mark = 0

// Env is the cursor state of a single stem computation. It is created for
// one word, mutated in place by the rule steps and read out at the end.
//
// Invariant: 0 <= LimitBackward <= Cursor <= Limit <= len(buffer) while a
// step is running.
type Env struct {
	current []rune

	Cursor        int
	Limit         int
	LimitBackward int
	Bra           int
	Ket           int

	marks [MaxMarks + 1]int
}

// NewEnv returns an Env positioned at the start of word.
func NewEnv(word string) *Env {
	e := &Env{}
	e.SetCurrent(word)
	return e
}

// SetCurrent resets the Env to work on word.
func (e *Env) SetCurrent(word string) {
	e.current = []rune(word)
	e.Cursor = 0
	e.Limit = len(e.current)
	e.LimitBackward = 0
	e.Bra = 0
	e.Ket = e.Limit
	e.marks = [MaxMarks + 1]int{}
}

// Current returns the buffer as a string.
func (e *Env) Current() string {
	return string(e.current)
}

// Len is the length of the buffer in runes.
func (e *Env) Len() int {
	return len(e.current)
}

// SetMark stores pos under m.
func (e *Env) SetMark(m Mark, pos int) {
	if m <= NoMark || m > MaxMarks {
		panic(errors.Errorf("region mark %d out of range [1, %d]", m, MaxMarks))
	}
	e.marks[m] = pos
}

// Mark returns the position stored under m.
func (e *Env) Mark(m Mark) int {
	if m <= NoMark || m > MaxMarks {
		panic(errors.Errorf("region mark %d out of range [1, %d]", m, MaxMarks))
	}
	return e.marks[m]
}

// InGrouping advances past the rune at the cursor if it belongs to g.
func (e *Env) InGrouping(g Grouping) bool {
	if e.Cursor >= e.Limit || !g.Contains(e.current[e.Cursor]) {
		return false
	}
	e.Cursor++
	return true
}

// OutGrouping advances past the rune at the cursor if it does not belong to g.
func (e *Env) OutGrouping(g Grouping) bool {
	if e.Cursor >= e.Limit || g.Contains(e.current[e.Cursor]) {
		return false
	}
	e.Cursor++
	return true
}

// InGroupingB steps back over the rune before the cursor if it belongs to g.
func (e *Env) InGroupingB(g Grouping) bool {
	if e.Cursor <= e.LimitBackward || !g.Contains(e.current[e.Cursor-1]) {
		return false
	}
	e.Cursor--
	return true
}

// OutGroupingB steps back over the rune before the cursor if it does not
// belong to g.
func (e *Env) OutGroupingB(g Grouping) bool {
	if e.Cursor <= e.LimitBackward || g.Contains(e.current[e.Cursor-1]) {
		return false
	}
	e.Cursor--
	return true
}

// GoPast advances the cursor past the first rune that belongs to g. On
// failure the cursor is left at the limit.
func (e *Env) GoPast(g Grouping) bool {
	for !e.InGrouping(g) {
		if e.Cursor >= e.Limit {
			return false
		}
		e.Cursor++
	}
	return true
}

// GoPastOut advances the cursor past the first rune that does not belong to g.
func (e *Env) GoPastOut(g Grouping) bool {
	for !e.OutGrouping(g) {
		if e.Cursor >= e.Limit {
			return false
		}
		e.Cursor++
	}
	return true
}

// Next advances the cursor by one rune.
func (e *Env) Next() bool {
	if e.Cursor >= e.Limit {
		return false
	}
	e.Cursor++
	return true
}

// EqS matches s at the cursor moving forward. The cursor only moves on success.
func (e *Env) EqS(s string) bool {
	c := e.Cursor
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if c >= e.Limit || e.current[c] != r {
			return false
		}
		c++
		s = s[size:]
	}
	e.Cursor = c
	return true
}

// EqSB matches s ending at the cursor moving backward. The cursor only moves
// on success.
func (e *Env) EqSB(s string) bool {
	c := e.Cursor
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if c <= e.LimitBackward || e.current[c-1] != r {
			return false
		}
		c--
		s = s[:len(s)-size]
	}
	e.Cursor = c
	return true
}

// SliceDel deletes the span [Bra, Ket).
func (e *Env) SliceDel() {
	e.SliceFrom("")
}

// SliceFrom replaces the span [Bra, Ket) with s.
func (e *Env) SliceFrom(s string) {
	if e.Bra < 0 || e.Bra > e.Ket || e.Ket > e.Limit || e.Limit > len(e.current) {
		panic(errors.Errorf("faulty slice [%d, %d) with limit %d on %q", e.Bra, e.Ket, e.Limit, e.Current()))
	}
	e.ReplaceS(e.Bra, e.Ket, []rune(s))
}

// ReplaceS replaces [bra, ket) with s and shifts the limit, the cursor and
// the ket by the length difference. It returns that difference.
func (e *Env) ReplaceS(bra, ket int, s []rune) int {
	adjustment := len(s) - (ket - bra)
	e.current = slices.Replace(e.current, bra, ket, s...)
	e.Limit += adjustment
	if e.Cursor >= ket {
		e.Cursor += adjustment
	} else if e.Cursor > bra {
		e.Cursor = bra
	}
	if e.Ket >= ket {
		e.Ket += adjustment
	} else if e.Ket > bra {
		e.Ket = bra
	}
	return adjustment
}
