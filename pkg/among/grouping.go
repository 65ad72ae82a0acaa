package among

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Grouping classifies runes in [min, max] as members or non-members of a
// character group, usually the vowels of a language.
type Grouping struct {
	min  rune
	max  rune
	bits *bitset.BitSet
}

// NewGrouping builds a grouping from a snowball style byte vector: bit i of
// byte j marks rune min+8*j+i as a member.
func NewGrouping(min, max rune, vector ...byte) (Grouping, error) {
	if min > max {
		return Grouping{}, errors.Errorf("grouping range [%d, %d] is empty", min, max)
	}
	width := uint(max-min) + 1
	if uint(len(vector))*8 < width {
		return Grouping{}, errors.Errorf("grouping vector of %d bytes cannot cover %d runes", len(vector), width)
	}
	bits := bitset.New(width)
	for j, b := range vector {
		for i := uint(0); i < 8; i++ {
			if b&(1<<i) == 0 {
				continue
			}
			off := uint(j)*8 + i
			if off >= width {
				return Grouping{}, errors.Errorf("grouping bit %d lies past max rune %q", off, max)
			}
			bits.Set(off)
		}
	}
	return Grouping{min: min, max: max, bits: bits}, nil
}

// GroupingOf builds a grouping whose members are exactly the runes of chars.
func GroupingOf(chars string) (Grouping, error) {
	if chars == "" {
		return Grouping{}, errors.New("grouping needs at least one member")
	}
	min, max := rune(-1), rune(-1)
	for _, r := range chars {
		if min < 0 || r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	bits := bitset.New(uint(max-min) + 1)
	for _, r := range chars {
		bits.Set(uint(r - min))
	}
	return Grouping{min: min, max: max, bits: bits}, nil
}

// MustGrouping is like GroupingOf but panics on error. It is meant for
// package level tables.
func MustGrouping(chars string) Grouping {
	g, err := GroupingOf(chars)
	if err != nil {
		panic(err)
	}
	return g
}

// Contains reports whether r belongs to the group.
func (g Grouping) Contains(r rune) bool {
	if g.bits == nil || r < g.min || r > g.max {
		return false
	}
	return g.bits.Test(uint(r - g.min))
}

// Range returns the code point range the grouping is defined over.
func (g Grouping) Range() (min, max rune) {
	return g.min, g.max
}
