package engine

import (
	"github.com/blevesearch/bleve/v2/analysis"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/ar" // Registers the delegated stemmers and stop lists.
	_ "github.com/blevesearch/bleve/v2/analysis/lang/ckb"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/da"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/de"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/es"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/fi"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/fr"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/hi"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/it"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/nl"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/no"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/ro"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/ru"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/sv"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/tr"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/kljensen/snowball"
	"github.com/pkg/errors"

	"github.com/xkmsoft/wordstem/pkg/stemmer/hungarian"
	"github.com/xkmsoft/wordstem/pkg/stemmer/portuguese"
)

var bleveCache = registry.NewCache()

var nativeStemmers = map[string]func(string) string{
	"hu": hungarian.Stem,
	"pt": portuguese.Stem,
}

var bleveStemmers = map[string]string{
	"ar":  "stemmer_ar",
	"ckb": "stemmer_ckb",
	"da":  "stemmer_da_snowball",
	"de":  "stemmer_de_light",
	"fi":  "stemmer_fi_snowball",
	"hi":  "stemmer_hi",
	"it":  "stemmer_it_light",
	"nl":  "stemmer_nl_snowball",
	"no":  "stemmer_no_snowball",
	"ro":  "stemmer_ro_snowball",
	"tr":  "stemmer_tr_snowball",
}

type StemmerInterface interface {
	Stem(tokens []string) []string
	StemWord(word string) string
}

// Stemmer is the handle returned by NewStemmer. It holds no per-word state
// and may be shared between goroutines.
type Stemmer struct {
	Language Language
	stem     func(string) string
}

// NewStemmer registers a stemmer for code. Every failure happens here, a
// registered Stemmer never fails on a word.
func NewStemmer(code string) (*Stemmer, error) {
	lang, err := LookupLanguage(code)
	if err != nil {
		return nil, err
	}
	s := &Stemmer{Language: lang}
	switch lang.Backend {
	case BackendNative:
		s.stem = nativeStemmers[lang.Code]
	case BackendSnowball:
		s.stem, err = snowballStemmer(lang.Name)
	case BackendBleve:
		s.stem, err = bleveStemmer(bleveStemmers[lang.Code])
	}
	if err != nil {
		return nil, errors.Wrapf(err, "registering %s stemmer", lang.Name)
	}
	if s.stem == nil {
		return nil, errors.Errorf("no %s stemmer for %s", lang.Backend, lang.Name)
	}
	return s, nil
}

func snowballStemmer(name string) (func(string) string, error) {
	if _, err := snowball.Stem("probe", name, true); err != nil {
		return nil, err
	}
	return func(word string) string {
		stemmed, err := snowball.Stem(word, name, true)
		if err != nil {
			return word
		}
		return stemmed
	}, nil
}

func bleveStemmer(name string) (func(string) string, error) {
	filter, err := bleveCache.TokenFilterNamed(name)
	if err != nil {
		return nil, err
	}
	return func(word string) string {
		out := filter.Filter(analysis.TokenStream{{
			Term:     []byte(word),
			End:      len(word),
			Position: 1,
			Type:     analysis.AlphaNumeric,
		}})
		if len(out) == 0 {
			return word
		}
		return string(out[0].Term)
	}, nil
}

// StemWord returns the stem of a single word.
func (s *Stemmer) StemWord(word string) string {
	if word == "" {
		return ""
	}
	return s.stem(word)
}

func (s *Stemmer) Stem(tokens []string) []string {
	newTokens := make([]string, 0, len(tokens))
	for idx := range tokens {
		if stemmed := s.StemWord(tokens[idx]); stemmed != "" {
			newTokens = append(newTokens, stemmed)
		}
	}
	return newTokens
}
