package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the name of id in the language of displayID. Unknown
// names fall back to English, then to the ID itself.
func DisplayName(id, displayID string) (string, error) {
	tag, dt, err := parsePair(id, displayID)
	if err != nil {
		return "", err
	}
	return first(display.Tags(dt).Name(tag), display.English.Tags().Name(tag), ID(tag)), nil
}

// DisplayLanguage returns the name of the language of id.
func DisplayLanguage(id, displayID string) (string, error) {
	tag, dt, err := parsePair(id, displayID)
	if err != nil {
		return "", err
	}
	b, _, _ := tag.Raw()
	return first(display.Languages(dt).Name(b), display.English.Languages().Name(b), b.String()), nil
}

// DisplayCountry returns the name of the region of id, "" when absent.
func DisplayCountry(id, displayID string) (string, error) {
	tag, dt, err := parsePair(id, displayID)
	if err != nil {
		return "", err
	}
	_, _, r := tag.Raw()
	if r.String() == "ZZ" {
		return "", nil
	}
	return first(display.Regions(dt).Name(r), display.English.Regions().Name(r), r.String()), nil
}

// DisplayScript returns the name of the script of id, "" when absent.
func DisplayScript(id, displayID string) (string, error) {
	tag, dt, err := parsePair(id, displayID)
	if err != nil {
		return "", err
	}
	_, s, _ := tag.Raw()
	if s.String() == "Zzzz" {
		return "", nil
	}
	return first(display.Scripts(dt).Name(s), display.English.Scripts().Name(s), s.String()), nil
}

func parsePair(id, displayID string) (language.Tag, language.Tag, error) {
	tag, err := Parse(id)
	if err != nil {
		return language.Und, language.Und, err
	}
	dt, err := Resolve(displayID)
	if err != nil {
		return language.Und, language.Und, err
	}
	return tag, dt, nil
}

func first(names ...string) string {
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return ""
}
