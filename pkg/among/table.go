package among

import (
	"sort"

	"github.com/pkg/errors"
)

// Direction says which end of the word a table is matched against.
type Direction int

const (
	// Forward tables match at the cursor moving towards the limit.
	Forward Direction = iota
	// Backward tables match suffixes ending at the cursor.
	Backward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Entry is a declared table row: a literal and the tag returned when it is
// the longest literal matching at the cursor. Tags start at 1.
type Entry struct {
	Literal string
	Tag     int
}

type row struct {
	s   []rune
	ref int
	tag int
}

// Table is a compiled among table. It is immutable and safe for concurrent
// use.
type Table struct {
	name string
	dir  Direction
	rows []row
}

// Compile sorts the entries into search order and links every row to the
// longest other row that is a proper suffix (Backward) or prefix (Forward)
// of it.
func Compile(name string, dir Direction, entries ...Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.Errorf("table %s: no entries", name)
	}
	rows := make([]row, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, en := range entries {
		if en.Tag < 1 {
			return nil, errors.Errorf("table %s: entry %q has tag %d, tags start at 1", name, en.Literal, en.Tag)
		}
		if _, ok := seen[en.Literal]; ok {
			return nil, errors.Errorf("table %s: duplicate entry %q", name, en.Literal)
		}
		seen[en.Literal] = struct{}{}
		rows = append(rows, row{s: []rune(en.Literal), ref: -1, tag: en.Tag})
	}

	less := lessForward
	if dir == Backward {
		less = lessBackward
	}
	sort.Slice(rows, func(i, j int) bool { return less(rows[i].s, rows[j].s) })

	for i := range rows {
		best := -1
		for j := range rows {
			if j == i || len(rows[j].s) >= len(rows[i].s) {
				continue
			}
			if !affix(dir, rows[i].s, rows[j].s) {
				continue
			}
			if best < 0 || len(rows[j].s) > len(rows[best].s) {
				best = j
			}
		}
		rows[i].ref = best
	}

	t := &Table{name: name, dir: dir, rows: rows}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustCompile is like Compile but panics on error. It is meant for package
// level tables, so a broken table stops the program at start-up.
func MustCompile(name string, dir Direction, entries ...Entry) *Table {
	t, err := Compile(name, dir, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) validate() error {
	for i, r := range t.rows {
		if r.ref >= i {
			return errors.Errorf("table %s: back-reference %d of %q does not precede it", t.name, r.ref, string(r.s))
		}
		if r.ref >= 0 && !affix(t.dir, r.s, t.rows[r.ref].s) {
			return errors.Errorf("table %s: back-reference of %q points at %q", t.name, string(r.s), string(t.rows[r.ref].s))
		}
	}
	return nil
}

// Name returns the table name used in error messages.
func (t *Table) Name() string { return t.name }

// Direction returns the matching direction of the table.
func (t *Table) Direction() Direction { return t.dir }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Tags returns the distinct tags used by the table.
func (t *Table) Tags() []int {
	seen := map[int]struct{}{}
	var tags []int
	for _, r := range t.rows {
		if _, ok := seen[r.tag]; !ok {
			seen[r.tag] = struct{}{}
			tags = append(tags, r.tag)
		}
	}
	sort.Ints(tags)
	return tags
}

// MaxLen returns the length in runes of the longest literal.
func (t *Table) MaxLen() int {
	n := 0
	for _, r := range t.rows {
		if len(r.s) > n {
			n = len(r.s)
		}
	}
	return n
}

func affix(dir Direction, s, part []rune) bool {
	if len(part) > len(s) {
		return false
	}
	if dir == Backward {
		s = s[len(s)-len(part):]
	}
	for i := range part {
		if s[i] != part[i] {
			return false
		}
	}
	return true
}

func lessForward(a, b []rune) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func lessBackward(a, b []rune) bool {
	for i := 1; i <= len(a) && i <= len(b); i++ {
		if x, y := a[len(a)-i], b[len(b)-i]; x != y {
			return x < y
		}
	}
	return len(a) < len(b)
}

// FindAmong finds the longest literal of t starting at the cursor. On a
// match the cursor moves past it and the row tag is returned; otherwise 0 is
// returned and the cursor is unchanged.
func (e *Env) FindAmong(t *Table) int {
	if t.dir != Forward {
		panic(errors.Errorf("table %s is %s, FindAmong needs a forward table", t.name, t.dir))
	}
	i, j := 0, len(t.rows)
	c, l := e.Cursor, e.Limit
	commonI, commonJ := 0, 0
	firstKeyInspected := false
	for {
		k := i + (j-i)>>1
		diff := 0
		common := min(commonI, commonJ)
		w := t.rows[k].s
		for p := common; p < len(w); p++ {
			if c+common == l {
				diff = -1
				break
			}
			diff = int(e.current[c+common]) - int(w[p])
			if diff != 0 {
				break
			}
			common++
		}
		if diff < 0 {
			j = k
			commonJ = common
		} else {
			i = k
			commonI = common
		}
		if j-i <= 1 {
			if i > 0 || j == i || firstKeyInspected {
				break
			}
			firstKeyInspected = true
		}
	}
	for {
		w := t.rows[i]
		if commonI >= len(w.s) {
			e.Cursor = c + len(w.s)
			return w.tag
		}
		i = w.ref
		if i < 0 {
			return 0
		}
	}
}

// FindAmongB finds the longest literal of t ending at the cursor, never
// looking before LimitBackward. On a match the cursor moves to the start of
// the literal and the row tag is returned; otherwise 0 is returned and the
// cursor is unchanged.
func (e *Env) FindAmongB(t *Table) int {
	if t.dir != Backward {
		panic(errors.Errorf("table %s is %s, FindAmongB needs a backward table", t.name, t.dir))
	}
	i, j := 0, len(t.rows)
	c, lb := e.Cursor, e.LimitBackward
	commonI, commonJ := 0, 0
	firstKeyInspected := false
	for {
		k := i + (j-i)>>1
		diff := 0
		common := min(commonI, commonJ)
		w := t.rows[k].s
		for p := len(w) - 1 - common; p >= 0; p-- {
			if c-common == lb {
				diff = -1
				break
			}
			diff = int(e.current[c-common-1]) - int(w[p])
			if diff != 0 {
				break
			}
			common++
		}
		if diff < 0 {
			j = k
			commonJ = common
		} else {
			i = k
			commonI = common
		}
		if j-i <= 1 {
			if i > 0 || j == i || firstKeyInspected {
				break
			}
			firstKeyInspected = true
		}
	}
	for {
		w := t.rows[i]
		if commonI >= len(w.s) {
			e.Cursor = c - len(w.s)
			return w.tag
		}
		i = w.ref
		if i < 0 {
			return 0
		}
	}
}
