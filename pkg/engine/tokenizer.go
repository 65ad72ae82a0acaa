package engine

import (
	"strings"
	"unicode"
)

type TokenizerInterface interface {
	Tokenize(s string) []string
}

// Tokenizer splits text on white space and hyphens. Punctuation stays on the
// tokens and is left for the Trimmer.
type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

func (t *Tokenizer) Tokenize(s string) []string {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	return tokens
}

func isLetterOrNumber(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
