package locale

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/status"
)

// Keyword is one ICU keyword of a locale ID, such as collation=phonebook.
type Keyword struct {
	Name  string
	Value string
}

// Parse converts an ICU locale ID (en_US, sr_Latn_RS, de@collation=phonebook)
// or a BCP 47 tag into a language tag. The empty ID and "root" are und.
func Parse(id string) (language.Tag, error) {
	const op = "locale.Parse"

	base, keywords, _ := strings.Cut(strings.TrimSpace(id), "@")
	base = strings.ReplaceAll(base, "_", "-")
	for strings.Contains(base, "--") {
		base = strings.ReplaceAll(base, "--", "-")
	}
	base = strings.TrimSuffix(base, "-")
	switch {
	case base == "" || strings.EqualFold(base, "root"):
		base = "und"
	case strings.HasPrefix(base, "-"):
		base = "und" + base
	}

	var posix bool
	if parts := strings.Split(base, "-"); len(parts) > 1 && strings.EqualFold(parts[len(parts)-1], "posix") {
		posix = true
		base = strings.Join(parts[:len(parts)-1], "-")
	}

	tag, err := language.Parse(base)
	if err != nil {
		return language.Und, status.New(op, status.InvalidParameter, fmt.Errorf("%w %q: %w", ErrMalformedID, id, err))
	}
	if posix {
		if tag, err = tag.SetTypeForKey("va", "posix"); err != nil {
			return language.Und, status.New(op, status.InvalidParameter, err)
		}
	}

	for kv := range strings.SplitSeq(keywords, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return language.Und, status.New(op, status.InvalidParameter, fmt.Errorf("%w: %q", ErrInvalidKeyword, kv))
		}
		if tag, err = setKeyword(tag, name, value); err != nil {
			return language.Und, status.New(op, status.InvalidParameter, err)
		}
	}
	return tag, nil
}

func setKeyword(tag language.Tag, name, value string) (language.Tag, error) {
	key, ok := bcpKey(strings.TrimSpace(name))
	if !ok {
		return tag, fmt.Errorf("%w: %q", ErrUnknownKeyword, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		t, err := tag.SetTypeForKey(key, "")
		if err != nil {
			return tag, fmt.Errorf("%w: %w", ErrInvalidKeyword, err)
		}
		return t, nil
	}
	t, err := tag.SetTypeForKey(key, bcpType(key, value))
	if err != nil {
		return tag, fmt.Errorf("%w %s=%s: %w", ErrInvalidKeyword, name, value, err)
	}
	return t, nil
}

// ID formats tag as a canonical ICU locale ID.
func ID(tag language.Tag) string {
	b, s, r := tag.Raw()
	var sb strings.Builder
	if b.String() != "und" {
		sb.WriteString(b.String())
	}
	if s.String() != "Zzzz" {
		sb.WriteString("_" + s.String())
	}
	region := r.String() != "ZZ"
	if region {
		sb.WriteString("_" + r.String())
	}

	variants := make([]string, 0, 2)
	for _, v := range tag.Variants() {
		variants = append(variants, strings.ToUpper(v.String()))
	}
	kws := keywords(tag)
	kws = slices.DeleteFunc(kws, func(kw Keyword) bool {
		if kw.Name == "va" && kw.Value == "posix" {
			variants = append(variants, "POSIX")
			return true
		}
		return false
	})
	if len(variants) > 0 {
		if !region {
			sb.WriteString("_")
		}
		for _, v := range variants {
			sb.WriteString("_" + v)
		}
	}

	for i, kw := range kws {
		if i == 0 {
			sb.WriteString("@")
		} else {
			sb.WriteString(";")
		}
		sb.WriteString(kw.Name + "=" + kw.Value)
	}
	return sb.String()
}

// keywords lists the unicode extension of tag as ICU keywords sorted by name.
func keywords(tag language.Tag) []Keyword {
	ext, ok := tag.Extension('u')
	if !ok {
		return nil
	}
	var out []Keyword
	tokens := strings.Split(ext.String(), "-")
	for i := 1; i < len(tokens); {
		key := tokens[i]
		i++
		if len(key) != 2 {
			continue
		}
		var types []string
		for i < len(tokens) && len(tokens[i]) > 2 {
			types = append(types, tokens[i])
			i++
		}
		typ := strings.Join(types, "-")
		if typ == "" {
			typ = "true"
		}
		out = append(out, Keyword{Name: keywordName(key), Value: icuValue(key, typ)})
	}
	slices.SortFunc(out, func(a, b Keyword) int { return strings.Compare(a.Name, b.Name) })
	return out
}
