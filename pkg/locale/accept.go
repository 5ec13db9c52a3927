package locale

import (
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/status"
)

// maxAcceptLanguageLength bounds the header that is parsed.
const maxAcceptLanguageLength = 4096

// AcceptResult describes how AcceptLanguage found its locale.
type AcceptResult int

const (
	// AcceptFailed means no requested language matched.
	AcceptFailed AcceptResult = iota
	// AcceptValid means a requested locale is available as is.
	AcceptValid
	// AcceptFallback means an available locale matched a parent of a request.
	AcceptFallback
)

func (r AcceptResult) String() string {
	switch r {
	case AcceptValid:
		return "valid"
	case AcceptFallback:
		return "fallback"
	default:
		return "failed"
	}
}

// AcceptLanguage picks the available locale best matching an HTTP
// Accept-Language header. Requests are tried by descending quality; each one
// first exactly, then through its parents (de-CH, de).
func AcceptLanguage(header string, available []string) (string, AcceptResult, error) {
	const op = "locale.AcceptLanguage"
	if len(available) == 0 {
		return "", AcceptFailed, status.New(op, status.InvalidParameter, ErrNoAvailableList)
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	byTag := make(map[string]string, len(available))
	for _, id := range available {
		tag, err := Parse(id)
		if err != nil {
			return "", AcceptFailed, err
		}
		if _, dup := byTag[tag.String()]; !dup {
			byTag[tag.String()] = id
		}
	}

	requested, q, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", AcceptFailed, status.New(op, status.InvalidParameter, err)
	}

	for i, tag := range requested {
		if q[i] <= 0 || tag == language.Und {
			continue
		}
		if id, ok := byTag[tag.String()]; ok {
			return id, AcceptValid, nil
		}
		for p := tag.Parent(); p != language.Und; p = p.Parent() {
			if id, ok := byTag[p.String()]; ok {
				return id, AcceptFallback, nil
			}
		}
	}
	return "", AcceptFailed, nil
}
