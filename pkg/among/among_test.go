package among

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupingFromVector(t *testing.T) {
	vec, err := NewGrouping('a', 'ü', 17, 65, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 17, 52, 14)
	require.NoError(t, err)
	chars := MustGrouping("aeiouáéíóõöúûü")

	for r := rune(0); r < 0x300; r++ {
		require.Equal(t, chars.Contains(r), vec.Contains(r), "rune %q", r)
	}
	min, max := vec.Range()
	require.Equal(t, 'a', min)
	require.Equal(t, 'ü', max)
}

func TestGroupingErrors(t *testing.T) {
	_, err := NewGrouping('z', 'a')
	require.Error(t, err)
	_, err = NewGrouping('a', 'z', 1)
	require.Error(t, err)
	_, err = NewGrouping('a', 'c', 0xff)
	require.Error(t, err)
	_, err = GroupingOf("")
	require.Error(t, err)

	var zero Grouping
	require.False(t, zero.Contains('a'))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("empty", Backward)
	require.Error(t, err)
	_, err = Compile("zero", Backward, Entry{"a", 0})
	require.Error(t, err)
	_, err = Compile("dup", Backward, Entry{"a", 1}, Entry{"a", 2})
	require.Error(t, err)
	require.Panics(t, func() { MustCompile("dup", Forward, Entry{"x", 1}, Entry{"x", 1}) })
}

func TestCompileOrder(t *testing.T) {
	tab := MustCompile("plural", Backward, Entry{"nak", 3}, Entry{"k", 1}, Entry{"ak", 2}, Entry{"ek", 2})
	require.Equal(t, 4, tab.Len())
	require.Equal(t, 3, tab.MaxLen())
	require.Equal(t, []int{1, 2, 3}, tab.Tags())
	require.Equal(t, Backward, tab.Direction())
	require.Equal(t, "plural", tab.Name())

	for i, r := range tab.rows {
		if r.ref >= 0 {
			require.Less(t, r.ref, i)
			require.True(t, affix(Backward, r.s, tab.rows[r.ref].s))
		}
	}
}

func TestFindAmongB(t *testing.T) {
	tab := MustCompile("plural", Backward, Entry{"k", 1}, Entry{"ak", 2}, Entry{"nak", 3}, Entry{"ek", 4})

	tests := []struct {
		word   string
		lb     int
		tag    int
		cursor int
	}{
		{"ablaknak", 0, 3, 5},
		{"házak", 0, 2, 3},
		{"emberek", 0, 4, 5},
		{"fák", 0, 1, 2},
		{"nak", 1, 2, 1},
		{"nak", 2, 1, 2},
		{"nak", 3, 0, 3},
		{"ház", 0, 0, 3},
		{"", 0, 0, 0},
	}
	for _, tc := range tests {
		e := NewEnv(tc.word)
		e.Cursor = e.Limit
		e.LimitBackward = tc.lb
		require.Equal(t, tc.tag, e.FindAmongB(tab), "word %q", tc.word)
		require.Equal(t, tc.cursor, e.Cursor, "word %q", tc.word)
	}
}

func TestFindAmong(t *testing.T) {
	tab := MustCompile("digraphs", Forward,
		Entry{"cs", 1}, Entry{"dzs", 2}, Entry{"gy", 3}, Entry{"ly", 4},
		Entry{"ny", 5}, Entry{"sz", 6}, Entry{"ty", 7}, Entry{"zs", 8})

	e := NewEnv("dzsungel")
	require.Equal(t, 2, e.FindAmong(tab))
	require.Equal(t, 3, e.Cursor)

	e = NewEnv("sztár")
	require.Equal(t, 6, e.FindAmong(tab))
	require.Equal(t, 2, e.Cursor)

	e = NewEnv("dal")
	require.Equal(t, 0, e.FindAmong(tab))
	require.Equal(t, 0, e.Cursor)

	e = NewEnv("c")
	require.Equal(t, 0, e.FindAmong(tab))

	require.Panics(t, func() { e.FindAmongB(tab) })
}

func TestGroupingScans(t *testing.T) {
	v := MustGrouping("aeiou")
	e := NewEnv("strand")

	require.False(t, e.InGrouping(v))
	require.True(t, e.OutGrouping(v))
	require.Equal(t, 1, e.Cursor)
	require.True(t, e.GoPast(v))
	require.Equal(t, 4, e.Cursor)
	require.True(t, e.GoPastOut(v))
	require.Equal(t, 5, e.Cursor)
	require.True(t, e.Next())
	require.False(t, e.Next())
	require.False(t, e.OutGrouping(v))
	require.False(t, e.GoPast(v))
	require.Equal(t, e.Limit, e.Cursor)

	require.True(t, e.OutGroupingB(v))
	require.True(t, e.OutGroupingB(v))
	require.True(t, e.InGroupingB(v))
	require.Equal(t, 3, e.Cursor)
	e.LimitBackward = 3
	require.False(t, e.OutGroupingB(v))
}

func TestEqS(t *testing.T) {
	e := NewEnv("pague")
	e.Cursor = e.Limit
	require.False(t, e.EqSB("xue"))
	require.Equal(t, 5, e.Cursor)
	require.True(t, e.EqSB("ue"))
	require.Equal(t, 3, e.Cursor)

	e.Cursor = 0
	require.True(t, e.EqS("pa"))
	require.Equal(t, 2, e.Cursor)
	require.False(t, e.EqS("guex"))
	require.Equal(t, 2, e.Cursor)
}

func TestSlices(t *testing.T) {
	e := NewEnv("házakat")
	e.Cursor = 3
	e.Bra, e.Ket = 3, 7
	e.SliceDel()
	require.Equal(t, "ház", e.Current())
	require.Equal(t, 3, e.Limit)
	require.Equal(t, 3, e.Cursor)

	e = NewEnv("logías")
	e.Bra, e.Ket = 0, 6
	e.Cursor = 0
	e.SliceFrom("log")
	require.Equal(t, "log", e.Current())
	require.Equal(t, 3, e.Limit)

	e = NewEnv("abc")
	e.Cursor = 3
	require.Equal(t, 2, e.ReplaceS(1, 2, []rune("xyz")))
	require.Equal(t, "axyzc", e.Current())
	require.Equal(t, 5, e.Cursor)
	require.Equal(t, 5, e.Limit)

	e.Bra, e.Ket = 4, 2
	require.Panics(t, func() { e.SliceDel() })
}

func TestMarks(t *testing.T) {
	e := NewEnv("casa")
	e.SetMark(1, 3)
	require.Equal(t, 3, e.Mark(1))
	require.Panics(t, func() { e.SetMark(NoMark, 1) })
	require.Panics(t, func() { e.Mark(MaxMarks + 1) })

	e.SetCurrent("outra")
	require.Equal(t, 0, e.Mark(1))
	require.Equal(t, 5, e.Len())
}

func TestStep(t *testing.T) {
	const r1 Mark = 1
	at := MustStep(Step{
		Name:  "at",
		Table: MustCompile("at", Backward, Entry{"at", 1}),
		Rules: map[int]Rule{1: {Gate: r1.Gate()}},
	})
	step := MustStep(Step{
		Name:     "suffix",
		Table:    MustCompile("suffix", Backward, Entry{"iva", 1}, Entry{"logía", 2}, Entry{"ira", 3}),
		Reanchor: true,
		Rules: map[int]Rule{
			1: {Gate: r1.Gate(), Next: at},
			2: {Gate: r1.Gate(), Replace: "log"},
			3: {Guard: Preceded("e"), Replace: "ir"},
		},
	})

	tests := []struct {
		word string
		r1   int
		want string
		ok   bool
	}{
		{"relativa", 2, "rel", true},
		{"relativa", 5, "relat", true},
		{"relativa", 6, "relativa", false},
		{"biologías", 0, "biologías", false},
		{"biología", 3, "biolog", true},
		{"brasileira", 0, "brasileir", true},
		{"mira", 0, "mira", false},
		{"", 0, "", false},
	}
	for _, tc := range tests {
		e := NewEnv(tc.word)
		e.SetMark(r1, tc.r1)
		require.Equal(t, tc.ok, step.Apply(e), "word %q", tc.word)
		require.Equal(t, tc.want, e.Current(), "word %q", tc.word)
	}
}

func TestStepWithin(t *testing.T) {
	const rv Mark = 2
	verb := MustStep(Step{
		Name:     "verb",
		Table:    MustCompile("verb", Backward, Entry{"ando", 1}, Entry{"o", 1}),
		Reanchor: true,
		Within:   rv,
		Rules:    map[int]Rule{1: {}},
	})

	e := NewEnv("cantando")
	e.SetMark(rv, 3)
	require.True(t, verb.Apply(e))
	require.Equal(t, "cant", e.Current())
	require.Equal(t, 0, e.LimitBackward)

	e = NewEnv("cantando")
	e.SetMark(rv, 6)
	require.True(t, verb.Apply(e))
	require.Equal(t, "cantand", e.Current())

	e = NewEnv("ando")
	e.SetMark(rv, 5)
	require.False(t, verb.Apply(e))
	require.Equal(t, "ando", e.Current())
}

func TestNewStepErrors(t *testing.T) {
	tab := MustCompile("t", Backward, Entry{"a", 1}, Entry{"b", 2})
	_, err := NewStep(Step{Name: "missing", Table: tab, Rules: map[int]Rule{1: {}}})
	require.Error(t, err)
	_, err = NewStep(Step{Name: "nil"})
	require.Error(t, err)
	_, err = NewStep(Step{Name: "fwd", Table: MustCompile("f", Forward, Entry{"a", 1}), Rules: map[int]Rule{1: {}}})
	require.Error(t, err)
	_, err = NewStep(Step{Name: "mark", Table: tab, Within: MaxMarks + 1, Rules: map[int]Rule{1: {}, 2: {}}})
	require.Error(t, err)
	_, err = NewStep(Step{Name: "zero", Table: tab, Rules: map[int]Rule{0: {}, 1: {}, 2: {}}})
	require.Error(t, err)
	require.Panics(t, func() { MustStep(Step{Name: "nil"}) })
}

func TestPrecededBy(t *testing.T) {
	double := MustCompile("double", Backward, Entry{"ll", 1}, Entry{"ss", 1})
	check := PrecededBy(double)

	e := NewEnv("hall")
	e.Cursor = e.Limit
	require.True(t, check(e))
	require.Equal(t, 4, e.Cursor)

	e = NewEnv("hal")
	e.Cursor = e.Limit
	require.False(t, check(e))
	require.Equal(t, 3, e.Cursor)
}

func TestRewrite(t *testing.T) {
	nasal := MustCompile("nasal", Forward, Entry{"ã", 1}, Entry{"õ", 2})
	tests := map[string]string{
		"pães":   "pa~es",
		"nações": "naço~es",
		"casa":   "casa",
		"":       "",
	}
	for in, want := range tests {
		e := NewEnv(in)
		e.Rewrite(nasal, map[int]string{1: "a~", 2: "o~"})
		require.Equal(t, want, e.Current(), "word %q", in)
	}

	back := MustCompile("back", Forward, Entry{"a~", 1}, Entry{"o~", 2})
	e := NewEnv("naço~es")
	e.Rewrite(back, map[int]string{1: "ã", 2: "õ"})
	require.Equal(t, "nações", e.Current())
}
