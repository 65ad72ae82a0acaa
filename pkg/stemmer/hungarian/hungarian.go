// Package hungarian implements the Snowball Hungarian stemmer on top of the
// among suffix-match engine.
//
// Hungarian suffixes come in back and front vowel variants (nak/nek,
// ban/ben). Several endings leave a long vowel that is shortened to its
// harmonic short form (á->a, é->e) instead of being deleted.
package hungarian

import (
	"github.com/xkmsoft/wordstem/pkg/among"
)

const p1 among.Mark = 1

const (
	del = iota + 1
	toA
	toE
)

var vowels = func() among.Grouping {
	g, err := among.NewGrouping('a', 'ü', 17, 65, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 17, 52, 14)
	if err != nil {
		panic(err)
	}
	return g
}()

var digraphs = among.MustCompile("digraphs", among.Forward, entries(1,
	"cs", "dzs", "gy", "ly", "ny", "sz", "ty", "zs")...)

var double = among.MustCompile("double", among.Backward, entries(1,
	"bb", "cc", "ccs", "dd", "ff", "gg", "ggy", "jj", "kk", "ll", "lly", "mm",
	"nn", "nny", "pp", "rr", "ss", "ssz", "tt", "tty", "vv", "zz", "zzs")...)

var (
	inR1     = p1.Gate()
	isDouble = among.PrecededBy(double)
)

// actions maps the collapsed tags to the rule applied by most steps.
var actions = map[int]among.Rule{
	del: {Gate: inR1, Replace: among.Delete},
	toA: {Gate: inR1, Replace: "a"},
	toE: {Gate: inR1, Replace: "e"},
}

var vEnding = among.MustStep(among.Step{
	Name:  "v_ending",
	Table: among.MustCompile("v_ending", among.Backward, among.Entry{Literal: "á", Tag: toA}, among.Entry{Literal: "é", Tag: toE}),
	Rules: map[int]among.Rule{toA: actions[toA], toE: actions[toE]},
})

var program = []*among.Step{
	among.MustStep(among.Step{
		Name:     "instrum",
		Table:    among.MustCompile("instrum", among.Backward, entries(del, "al", "el")...),
		Reanchor: true,
		Rules:    map[int]among.Rule{del: {Gate: inR1, Guard: isDouble, After: undouble}},
	}),
	among.MustStep(among.Step{
		Name: "case",
		Table: among.MustCompile("case", among.Backward, entries(del,
			"ba", "ra", "be", "re", "ig", "nak", "nek", "val", "vel", "ul", "nál",
			"nél", "ból", "ról", "tól", "bõl", "rõl", "tõl", "ül", "n", "an", "ban",
			"en", "ben", "képpen", "on", "ön", "képp", "kor", "t", "at", "et",
			"ként", "anként", "enként", "onként", "ot", "ért", "öt", "hez", "hoz",
			"höz", "vá", "vé")...),
		Reanchor: true,
		Rules:    map[int]among.Rule{del: {Gate: inR1, Next: vEnding}},
	}),
	step("case_special", map[int][]string{
		toA: {"án", "ánként"},
		toE: {"én"},
	}),
	step("case_other", map[int][]string{
		del: {"stul", "astul", "stül", "estül"},
		toA: {"ástul"},
		toE: {"éstül"},
	}),
	among.MustStep(among.Step{
		Name:     "factive",
		Table:    among.MustCompile("factive", among.Backward, entries(del, "á", "é")...),
		Reanchor: true,
		Rules:    map[int]among.Rule{del: {Gate: inR1, Guard: isDouble, After: undouble}},
	}),
	step("owned", map[int][]string{
		del: {"éi", "é", "ké", "aké", "eké", "oké", "öké"},
		toA: {"áké", "áéi"},
		toE: {"éké", "ééi", "éé"},
	}),
	step("sing_owner", map[int][]string{
		del: {"a", "ja", "d", "ad", "ed", "od", "öd", "e", "je", "nk", "unk", "ünk",
			"uk", "juk", "ük", "jük", "m", "am", "em", "om", "o"},
		toA: {"ád", "ánk", "ájuk", "ám", "á"},
		toE: {"éd", "énk", "éjük", "ém", "é"},
	}),
	step("plur_owner", map[int][]string{
		del: {"id", "aid", "jaid", "eid", "jeid", "i", "ai", "jai", "ei", "jei",
			"itek", "eitek", "jeitek", "ik", "aik", "jaik", "eik", "jeik", "ink",
			"aink", "jaink", "eink", "jeink", "aitok", "jaitok", "im", "aim",
			"jaim", "eim", "jeim"},
		toA: {"áid", "ái", "áik", "áink", "áitok", "áim"},
		toE: {"éid", "éi", "éitek", "éik", "éink", "éim"},
	}),
	step("plural", map[int][]string{
		del: {"k", "ak", "ek", "ok", "ök"},
		toA: {"ák"},
		toE: {"ék"},
	}),
}

func entries(tag int, literals ...string) []among.Entry {
	out := make([]among.Entry, 0, len(literals))
	for _, l := range literals {
		out = append(out, among.Entry{Literal: l, Tag: tag})
	}
	return out
}

// step builds a re-anchored, R1 gated step whose endings are grouped by
// action.
func step(name string, byTag map[int][]string) *among.Step {
	var all []among.Entry
	rules := make(map[int]among.Rule, len(byTag))
	for tag, literals := range byTag {
		all = append(all, entries(tag, literals...)...)
		rules[tag] = actions[tag]
	}
	return among.MustStep(among.Step{
		Name:     name,
		Table:    among.MustCompile(name, among.Backward, all...),
		Reanchor: true,
		Rules:    rules,
	})
}

// undouble drops one letter of the doubled consonant now ending the word:
// hallal -> hall -> hal, lóccsal -> lóccs -> lócs.
func undouble(e *among.Env) {
	if e.Cursor <= e.LimitBackward {
		return
	}
	e.Cursor--
	e.Ket = e.Cursor
	c := e.Cursor - 1
	if c < e.LimitBackward || c > e.Limit {
		return
	}
	e.Cursor = c
	e.Bra = c
	e.SliceDel()
}

// markRegions stores p1, the start of R1. For words starting with a vowel R1
// begins after the first consonant, a digraph counting as one consonant.
// Otherwise it begins after the first vowel.
func markRegions(e *among.Env) {
	e.SetMark(p1, e.Limit)
	if e.InGrouping(vowels) {
		for {
			c := e.Cursor
			if e.OutGrouping(vowels) {
				e.Cursor = c
				if e.FindAmong(digraphs) == 0 {
					e.Cursor = c
					e.Next()
				}
				e.SetMark(p1, e.Cursor)
				return
			}
			e.Cursor = c
			if !e.Next() {
				e.SetMark(p1, c)
				return
			}
		}
	}
	e.Cursor = 0
	if e.OutGrouping(vowels) && e.GoPast(vowels) {
		e.SetMark(p1, e.Cursor)
	}
}

// Region returns the start of R1 for word, in runes.
func Region(word string) int {
	e := among.NewEnv(word)
	markRegions(e)
	return e.Mark(p1)
}

// Stem returns the stem of word. Words are expected to be lowercase.
func Stem(word string) string {
	e := among.NewEnv(word)
	markRegions(e)
	e.LimitBackward = 0
	for _, s := range program {
		s.Apply(e)
	}
	return e.Current()
}
