package engine

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Backends a language can be stemmed with.
const (
	BackendNative   = "native"
	BackendSnowball = "snowball"
	BackendBleve    = "bleve"
)

type Language struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Backend string `json:"backend"`
}

var languages = []Language{
	{"hu", "hungarian", BackendNative},
	{"pt", "portuguese", BackendNative},
	{"en", "english", BackendSnowball},
	{"es", "spanish", BackendSnowball},
	{"fr", "french", BackendSnowball},
	{"ru", "russian", BackendSnowball},
	{"sv", "swedish", BackendSnowball},
	{"ar", "arabic", BackendBleve},
	{"ckb", "sorani", BackendBleve},
	{"da", "danish", BackendBleve},
	{"de", "german", BackendBleve},
	{"fi", "finnish", BackendBleve},
	{"hi", "hindi", BackendBleve},
	{"it", "italian", BackendBleve},
	{"nl", "dutch", BackendBleve},
	{"no", "norwegian", BackendBleve},
	{"ro", "romanian", BackendBleve},
	{"tr", "turkish", BackendBleve},
}

// macrolanguage members that share a stemmer
var aliases = map[string]string{
	"nb": "no",
	"nn": "no",
}

// Languages returns the supported languages sorted by code.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LookupLanguage resolves a language code, a BCP 47 tag such as pt-BR or
// hu_HU, or an English language name such as "hungarian".
func LookupLanguage(code string) (Language, error) {
	s := strings.ToLower(strings.TrimSpace(code))
	if s == "" {
		return Language{}, errors.New("empty language code")
	}
	for _, l := range languages {
		if l.Code == s || l.Name == s {
			return l, nil
		}
	}
	base, ok := langBase(strings.ReplaceAll(s, "_", "-"))
	if !ok {
		return Language{}, errors.Errorf("unknown language %q", code)
	}
	if a, ok := aliases[base]; ok {
		base = a
	}
	for _, l := range languages {
		if l.Code == base {
			return l, nil
		}
	}
	return Language{}, errors.Errorf("unsupported language %q", code)
}

var langBaseCache struct {
	sync.Mutex
	m map[string]string
}

// langBase returns the ISO 639 base of a BCP 47 tag. Tags that only match
// with no confidence are rejected.
func langBase(lang string) (string, bool) {
	langBaseCache.Lock()
	defer langBaseCache.Unlock()
	if langBaseCache.m == nil {
		langBaseCache.m = make(map[string]string)
	}
	if base, found := langBaseCache.m[lang]; found {
		return base, true
	}
	tag, err := language.Parse(lang)
	if err != nil || tag == language.Und {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	langBaseCache.m[lang] = base.String()
	return base.String(), true
}
