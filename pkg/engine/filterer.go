package engine

import (
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type FilterInterface interface {
	Normalize(tokens []string) []string
	Lowercase(tokens []string) []string
	RemoveStopWords(tokens []string) []string
}

// Filterer normalizes tokens and drops the stop words of one language.
type Filterer struct {
	Language  Language
	StopWords map[string]struct{}
	tag       language.Tag
	stop      analysis.TokenFilter
	fold      *strings.Replacer
}

// folds map letters that NFC composes to the spelling the native stemmer
// tables and stop lists use. The Hungarian tables write ő and ű as õ and û.
var folds = map[string]*strings.Replacer{
	"hu": strings.NewReplacer("ő", "õ", "ű", "û", "Ő", "Õ", "Ű", "Û"),
}

func NewFilterer(code string) (*Filterer, error) {
	lang, err := LookupLanguage(code)
	if err != nil {
		return nil, err
	}
	f := &Filterer{
		Language:  lang,
		StopWords: map[string]struct{}{},
		tag:       language.Make(lang.Code),
		fold:      folds[lang.Code],
	}
	if words, ok := stopWords[lang.Code]; ok {
		for _, w := range words {
			f.StopWords[w] = struct{}{}
		}
		return f, nil
	}
	f.stop, err = bleveCache.TokenFilterNamed("stop_" + lang.Code)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s stop words", lang.Name)
	}
	return f, nil
}

// Normalize puts every token in Unicode normalization form C, so that
// precomposed and combining spellings of a letter stem alike, then applies
// the language's letter folds.
func (f *Filterer) Normalize(tokens []string) []string {
	for idx := range tokens {
		tokens[idx] = norm.NFC.String(tokens[idx])
		if f.fold != nil {
			tokens[idx] = f.fold.Replace(tokens[idx])
		}
	}
	return tokens
}

func (f *Filterer) Lowercase(tokens []string) []string {
	// a Caser keeps state and is not shared between calls
	caser := cases.Lower(f.tag)
	for idx := range tokens {
		tokens[idx] = caser.String(tokens[idx])
	}
	return tokens
}

func (f *Filterer) IsStopWord(token string) bool {
	if f.stop != nil {
		return len(f.stop.Filter(analysis.TokenStream{{Term: []byte(token)}})) == 0
	}
	_, exist := f.StopWords[token]
	return exist
}

func (f *Filterer) RemoveStopWords(tokens []string) []string {
	newTokens := make([]string, 0, len(tokens))
	for idx := range tokens {
		token := tokens[idx]
		if !f.IsStopWord(token) {
			newTokens = append(newTokens, token)
		}
	}
	return newTokens
}
