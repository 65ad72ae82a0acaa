package engine

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"
)

// LatinWordCharacters is the word-character set of the Latin script
// languages, in range notation: single runes and from-to pairs joined by '-'.
const LatinWordCharacters = "A-Za-zªºÀ-ÖØ-öø-ʸˠ-ˤ" +
	"ᴀ-ᴥᴬ-ᵜᵢ-ᵥᵫ-ᵷᵹ-ᶾḀ-ỿ" +
	"ⁱⁿₐ-ₜKÅℲⅎⅠ-ↈⱠ-Ɀ" +
	"Ꜣ-ꞇꞋ-ꞭꞰ-ꞷꟷ-ꟿꬰ-ꭚꭜ-ꭤ" +
	"ﬀ-ﬆＡ-Ｚａ-ｚ"

type TrimmerInterface interface {
	Trim(tokens []string) []string
}

// Trimmer strips leading and trailing runes that are not word characters.
// A nil chars bitmap means every letter and digit is a word character.
type Trimmer struct {
	chars *roaring.Bitmap
}

// NewTrimmer parses a word-character set in range notation.
func NewTrimmer(set string) (*Trimmer, error) {
	runes := []rune(set)
	chars := roaring.New()
	for i := 0; i < len(runes); i++ {
		lo := runes[i]
		if i+2 < len(runes) && runes[i+1] == '-' {
			hi := runes[i+2]
			if hi < lo {
				return nil, errors.Errorf("word characters: range %q-%q is reversed", lo, hi)
			}
			chars.AddRange(uint64(lo), uint64(hi)+1)
			i += 2
			continue
		}
		chars.Add(uint32(lo))
	}
	if chars.IsEmpty() {
		return nil, errors.New("word characters: empty set")
	}
	chars.RunOptimize()
	return &Trimmer{chars: chars}, nil
}

// NewTrimmerFor returns the trimmer of a language. Languages outside the
// Latin script keep every letter and digit.
func NewTrimmerFor(lang Language) (*Trimmer, error) {
	switch lang.Code {
	case "ar", "ckb", "hi", "ru":
		return &Trimmer{}, nil
	}
	return NewTrimmer(LatinWordCharacters)
}

func (t *Trimmer) IsWordCharacter(r rune) bool {
	if t.chars == nil {
		return isLetterOrNumber(r)
	}
	return r >= 0 && t.chars.Contains(uint32(r))
}

func (t *Trimmer) TrimWord(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return !t.IsWordCharacter(r) })
}

// Trim trims every token and drops the ones left empty.
func (t *Trimmer) Trim(tokens []string) []string {
	newTokens := make([]string, 0, len(tokens))
	for idx := range tokens {
		if token := t.TrimWord(tokens[idx]); token != "" {
			newTokens = append(newTokens, token)
		}
	}
	return newTokens
}
