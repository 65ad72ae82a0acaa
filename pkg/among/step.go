package among

import (
	"github.com/pkg/errors"
)

// Check is a predicate over the cursor state. Region gates and look-behind
// guards are Checks.
type Check func(e *Env) bool

// Gate returns a Check that holds when the cursor is at or after the
// position stored under m.
func (m Mark) Gate() Check {
	return func(e *Env) bool { return e.Mark(m) <= e.Cursor }
}

// Preceded returns a Check that holds when s ends at the cursor. The cursor
// is restored either way.
func Preceded(s string) Check {
	return func(e *Env) bool {
		c := e.Cursor
		ok := e.EqSB(s)
		e.Cursor = c
		return ok
	}
}

// PrecededBy returns a Check that holds when some literal of t ends at the
// cursor. The cursor is restored either way.
func PrecededBy(t *Table) Check {
	return func(e *Env) bool {
		c := e.Cursor
		ok := e.FindAmongB(t) != 0
		e.Cursor = c
		return ok
	}
}

// Delete is the replacement of a Rule that removes the matched suffix.
const Delete = ""

// Rule is what a Step does with a suffix once its table matched it.
type Rule struct {
	// Gate is the region check, evaluated with the cursor at the start of
	// the matched suffix. A nil Gate always passes.
	Gate Check
	// Guard is an extra test evaluated after Gate. It must not consume.
	Guard Check
	// Replace is the literal that replaces the suffix; Delete removes it.
	Replace string
	// Keep leaves the suffix in place: the rule only reports a match.
	Keep bool
	// Next is attempted after the replacement, from the new cursor.
	Next *Step
	// After runs last, e.g. to undouble a consonant.
	After func(e *Env)
}

// Step is one rule application of a stemmer program.
type Step struct {
	Name  string
	Table *Table
	// Reanchor moves the cursor to the limit before matching. Cascaded
	// steps leave it unset and continue where their parent left off.
	Reanchor bool
	// Within restricts matching to the region after the given mark.
	Within Mark
	Rules  map[int]Rule
}

// NewStep checks that every tag of t has a rule. A Step with a missing rule
// is a setup defect.
func NewStep(s Step) (*Step, error) {
	if s.Table == nil {
		return nil, errors.Errorf("step %s: no table", s.Name)
	}
	if s.Table.Direction() != Backward {
		return nil, errors.Errorf("step %s: table %s must be backward", s.Name, s.Table.Name())
	}
	if s.Within < NoMark || s.Within > MaxMarks {
		return nil, errors.Errorf("step %s: mark %d out of range", s.Name, s.Within)
	}
	for _, tag := range s.Table.Tags() {
		if _, ok := s.Rules[tag]; !ok {
			return nil, errors.Errorf("step %s: no rule for tag %d of table %s", s.Name, tag, s.Table.Name())
		}
	}
	for tag := range s.Rules {
		if tag < 1 {
			return nil, errors.Errorf("step %s: rule for invalid tag %d", s.Name, tag)
		}
	}
	return &s, nil
}

// MustStep is like NewStep but panics on error.
func MustStep(s Step) *Step {
	st, err := NewStep(s)
	if err != nil {
		panic(err)
	}
	return st
}

// Apply runs the step against e. It reports whether a suffix was matched
// and passed its gate and guard; cascaded steps do not affect the result.
// When Apply returns false the buffer is untouched.
func (s *Step) Apply(e *Env) bool {
	if s.Reanchor {
		e.Cursor = e.Limit
	}
	if s.Within != NoMark {
		bound := e.Mark(s.Within)
		if e.Cursor < bound {
			return false
		}
		saved := e.LimitBackward
		e.LimitBackward = bound
		defer func() { e.LimitBackward = saved }()
	}

	e.Ket = e.Cursor
	tag := e.FindAmongB(s.Table)
	if tag == 0 {
		return false
	}
	e.Bra = e.Cursor
	rule := s.Rules[tag]
	if rule.Gate != nil && !rule.Gate(e) {
		return false
	}
	if rule.Guard != nil && !rule.Guard(e) {
		return false
	}
	if !rule.Keep {
		e.SliceFrom(rule.Replace)
	}
	if rule.Next != nil {
		rule.Next.Apply(e)
	}
	if rule.After != nil {
		rule.After(e)
	}
	return true
}

// Rewrite scans the buffer forward from the cursor, replacing every literal
// of t whose tag has an entry in with. Tags without an entry, and positions
// where nothing matches, advance the cursor by one rune.
func (e *Env) Rewrite(t *Table, with map[int]string) {
	for {
		e.Bra = e.Cursor
		tag := e.FindAmong(t)
		e.Ket = e.Cursor
		if s, ok := with[tag]; ok && tag != 0 {
			e.SliceFrom(s)
			continue
		}
		e.Cursor = e.Bra
		if !e.Next() {
			return
		}
	}
}
