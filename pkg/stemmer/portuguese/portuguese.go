// Package portuguese implements the Snowball Portuguese stemmer on top of
// the among suffix-match engine.
//
// The nasal vowels ã and õ are rewritten to a~ and o~ before the suffix
// steps run, so that the tables can treat the tilde as a consonant, and are
// restored at the end.
package portuguese

import (
	"github.com/xkmsoft/wordstem/pkg/among"
)

const (
	pV among.Mark = iota + 1
	p1
	p2
)

var vowels = func() among.Grouping {
	g, err := among.NewGrouping('a', 'ú', 17, 65, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 19, 12, 2)
	if err != nil {
		panic(err)
	}
	return g
}()

var (
	inRV = pV.Gate()
	inR1 = p1.Gate()
	inR2 = p2.Gate()
)

var (
	nasals = among.MustCompile("prelude", among.Forward,
		among.Entry{Literal: "ã", Tag: 1}, among.Entry{Literal: "õ", Tag: 2})
	placeholders = among.MustCompile("postlude", among.Forward,
		among.Entry{Literal: "a~", Tag: 1}, among.Entry{Literal: "o~", Tag: 2})
)

func entries(tag int, literals ...string) []among.Entry {
	out := make([]among.Entry, 0, len(literals))
	for _, l := range literals {
		out = append(out, among.Entry{Literal: l, Tag: tag})
	}
	return out
}

// cascade is a step that continues from the cursor left by its parent and
// deletes whatever it matches inside R2.
func cascade(name string, next *among.Step, literals ...string) *among.Step {
	rule := among.Rule{Gate: inR2}
	rules := map[int]among.Rule{1: rule}
	var all []among.Entry
	if next != nil {
		// the last literal chains into next
		all = entries(1, literals[:len(literals)-1]...)
		all = append(all, among.Entry{Literal: literals[len(literals)-1], Tag: 2})
		rules[2] = among.Rule{Gate: inR2, Next: next}
	} else {
		all = entries(1, literals...)
	}
	return among.MustStep(among.Step{
		Name:  name,
		Table: among.MustCompile(name, among.Backward, all...),
		Rules: rules,
	})
}

var (
	at      = cascade("at", nil, "at")
	afterAm = cascade("amente_residue", at, "ic", "ad", "os", "iv")
	afterMe = cascade("mente_residue", nil, "ante", "avel", "ível")
	afterId = cascade("idade_residue", nil, "ic", "abil", "iv")
)

const (
	plain = iota + 1
	toLog
	toU
	toEnte
	amente
	mente
	idade
	iva
	ira
)

var standardSuffix = among.MustStep(among.Step{
	Name: "standard_suffix",
	Table: among.MustCompile("standard_suffix", among.Backward, concat(
		entries(plain, "ica", "ância", "adora", "osa", "ista", "eza", "ante", "ável",
			"ível", "ico", "ismo", "oso", "amento", "imento", "aça~o", "ador", "icas",
			"adoras", "osas", "istas", "ezas", "adores", "antes", "aço~es", "icos",
			"ismos", "osos", "amentos", "imentos"),
		entries(toLog, "logía", "logías"),
		entries(toU, "ución", "uciones"),
		entries(toEnte, "ência", "ências"),
		entries(amente, "amente"),
		entries(mente, "mente"),
		entries(idade, "idade", "idades"),
		entries(iva, "iva", "ivo", "ivas", "ivos"),
		entries(ira, "ira", "iras"),
	)...),
	Reanchor: true,
	Rules: map[int]among.Rule{
		plain:  {Gate: inR2},
		toLog:  {Gate: inR2, Replace: "log"},
		toU:    {Gate: inR2, Replace: "u"},
		toEnte: {Gate: inR2, Replace: "ente"},
		amente: {Gate: inR1, Next: afterAm},
		mente:  {Gate: inR2, Next: afterMe},
		idade:  {Gate: inR2, Next: afterId},
		iva:    {Gate: inR2, Next: at},
		ira:    {Gate: inRV, Guard: among.Preceded("e"), Replace: "ir"},
	},
})

var verbSuffix = among.MustStep(among.Step{
	Name: "verb_suffix",
	Table: among.MustCompile("verb_suffix", among.Backward, entries(1,
		"ada", "ida", "ia", "aria", "eria", "iria", "ara", "era", "ira", "ava",
		"asse", "esse", "isse", "aste", "este", "iste", "ei", "arei", "erei",
		"irei", "am", "iam", "ariam", "eriam", "iriam", "aram", "eram", "iram",
		"avam", "em", "arem", "erem", "irem", "assem", "essem", "issem", "ado",
		"ido", "ando", "endo", "indo", "ara~o", "era~o", "ira~o", "ar", "er", "ir",
		"as", "adas", "idas", "ias", "arias", "erias", "irias", "aras", "eras",
		"iras", "avas", "es", "ardes", "erdes", "irdes", "ares", "eres", "ires",
		"asses", "esses", "isses", "astes", "estes", "istes", "is", "ais", "eis",
		"areis", "ereis", "ireis", "áreis", "éreis", "íreis", "ásseis", "ésseis",
		"ísseis", "áveis", "íeis", "aríeis", "eríeis", "iríeis", "ados", "idos",
		"amos", "áramos", "éramos", "íramos", "ávamos", "íamos", "aríamos",
		"eríamos", "iríamos", "emos", "aremos", "eremos", "iremos", "ássemos",
		"êssemos", "íssemos", "imos", "armos", "ermos", "irmos", "ámos", "arás",
		"erás", "irás", "eu", "iu", "ou", "ará", "erá", "irá")...),
	Reanchor: true,
	Within:   pV,
	Rules:    map[int]among.Rule{1: {}},
})

// afterC drops an i left after c once a standard or verb suffix is gone:
// comerciais -> comerci -> comerc.
var afterC = among.MustStep(among.Step{
	Name:     "i_after_c",
	Table:    among.MustCompile("i_after_c", among.Backward, among.Entry{Literal: "i", Tag: 1}),
	Reanchor: true,
	Rules:    map[int]among.Rule{1: {Gate: inRV, Guard: among.Preceded("c")}},
})

var residualSuffix = among.MustStep(among.Step{
	Name:     "residual_suffix",
	Table:    among.MustCompile("residual_suffix", among.Backward, entries(1, "a", "i", "o", "os", "á", "í", "ó")...),
	Reanchor: true,
	Rules:    map[int]among.Rule{1: {Gate: inRV}},
})

var residualForm = among.MustStep(among.Step{
	Name: "residual_form",
	Table: among.MustCompile("residual_form", among.Backward, concat(
		entries(1, "e", "é", "ê"),
		entries(2, "ç"),
	)...),
	Reanchor: true,
	Rules: map[int]among.Rule{
		1: {Gate: inRV, Next: among.MustStep(among.Step{
			Name: "gu_ci",
			Table: among.MustCompile("gu_ci", among.Backward,
				among.Entry{Literal: "u", Tag: 1}, among.Entry{Literal: "i", Tag: 2}),
			Rules: map[int]among.Rule{
				1: {Gate: inRV, Guard: among.Preceded("g")},
				2: {Gate: inRV, Guard: among.Preceded("c")},
			},
		})},
		2: {Replace: "c"},
	},
})

func concat(groups ...[]among.Entry) []among.Entry {
	var out []among.Entry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// markRegions stores RV, R1 and R2.
//
// RV starts after the next vowel when the word begins with two consonants
// or with a vowel and a consonant, after the next consonant when it begins
// with two vowels, and after the third letter otherwise.
func markRegions(e *among.Env) {
	e.SetMark(pV, e.Limit)
	e.SetMark(p1, e.Limit)
	e.SetMark(p2, e.Limit)

	start := e.Cursor
	if rv(e, start) {
		e.SetMark(pV, e.Cursor)
	}
	e.Cursor = start
	if e.GoPast(vowels) && e.GoPastOut(vowels) {
		e.SetMark(p1, e.Cursor)
		if e.GoPast(vowels) && e.GoPastOut(vowels) {
			e.SetMark(p2, e.Cursor)
		}
	}
}

func rv(e *among.Env, start int) bool {
	if e.InGrouping(vowels) {
		c := e.Cursor
		if e.OutGrouping(vowels) && e.GoPast(vowels) {
			return true
		}
		e.Cursor = c
		return e.InGrouping(vowels) && e.GoPastOut(vowels)
	}
	e.Cursor = start
	if !e.OutGrouping(vowels) {
		return false
	}
	c := e.Cursor
	if e.OutGrouping(vowels) && e.GoPast(vowels) {
		return true
	}
	e.Cursor = c
	return e.InGrouping(vowels) && e.Next()
}

// Regions returns the starts of RV, R1 and R2 for word, in runes. The
// positions refer to word after the nasal vowel rewrite, so they are only
// comparable to rune offsets of word when it has no ã or õ.
func Regions(word string) (rv, r1, r2 int) {
	e := among.NewEnv(word)
	e.Rewrite(nasals, map[int]string{1: "a~", 2: "o~"})
	e.Cursor = 0
	markRegions(e)
	return e.Mark(pV), e.Mark(p1), e.Mark(p2)
}

// Stem returns the stem of word. Words are expected to be lowercase.
func Stem(word string) string {
	e := among.NewEnv(word)
	e.Rewrite(nasals, map[int]string{1: "a~", 2: "o~"})
	e.Cursor = 0
	markRegions(e)

	e.LimitBackward = 0
	if standardSuffix.Apply(e) || verbSuffix.Apply(e) {
		afterC.Apply(e)
	} else {
		residualSuffix.Apply(e)
	}
	residualForm.Apply(e)

	e.Cursor = e.LimitBackward
	e.Rewrite(placeholders, map[int]string{1: "ã", 2: "õ"})
	return e.Current()
}
