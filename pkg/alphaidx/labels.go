package alphaidx

import (
	"unicode"

	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/uchar"
	"github.com/dmitrymomot/intl/pkg/uset"
)

// indexChars are the label sets of languages whose index differs from A-Z.
var indexChars = map[string]string{
	"es": "[A-NÑO-Z]",
	"sv": "[A-ZÅÄÖ]",
	"fi": "[A-ZÅÄÖ]",
	"da": "[A-ZÆØÅ]",
	"nb": "[A-ZÆØÅ]",
	"pl": "[AĄBCĆDEĘFGHIJKLŁMNŃOÓPRSŚTUWYZŹŻ]",
	"ru": "[А-ИК-ЩЫЭ-Я]",
	"uk": "[А-ГҐДЕЄЖЗИІЇЙК-ЩЬЮЯ]",
	"el": "[Α-ΡΣ-Ω]",
}

const latinIndex = "[A-Z]"

// labelSet returns the index characters of the language of id.
func labelSet(id string) (*uset.Set, error) {
	lang, err := locale.Language(id)
	if err != nil {
		return nil, err
	}
	pattern, ok := indexChars[lang]
	if !ok {
		pattern = latinIndex
	}
	return uset.NewPattern(pattern)
}

// labelsOf lists the code points and strings of s.
func labelsOf(s *uset.Set) ([]string, error) {
	n, err := s.ItemCount()
	if err != nil {
		return nil, err
	}
	var out []string
	for i := range n {
		lo, hi, str, err := s.Item(i)
		if err != nil {
			return nil, err
		}
		if str != "" {
			out = append(out, str)
			continue
		}
		for r := lo; r <= hi; r++ {
			out = append(out, string(r))
		}
	}
	return out, nil
}

// scriptOf returns the script of the first letter of s, "" when s has none.
func scriptOf(s string) string {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if sc, err := uchar.Script(r); err == nil && sc != "Common" && sc != "Inherited" {
			return sc
		}
	}
	return ""
}
