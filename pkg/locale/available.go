package locale

import (
	"slices"
	"sync"

	"golang.org/x/text/language/display"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/status"
)

var available = sync.OnceValue(func() []string {
	tags := display.Supported.Tags()
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		if id := ID(t); id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
})

// CountAvailable returns the number of locales with display data.
func CountAvailable() int { return len(available()) }

// Available returns the i-th available locale. An index outside
// [0, CountAvailable()) is IndexOutOfBounds.
func Available(i int) (string, error) {
	ids := available()
	if i < 0 || i >= len(ids) {
		return "", status.New("locale.Available", status.IndexOutOfBounds, nil)
	}
	return ids[i], nil
}

// OpenAvailable enumerates the available locales.
func OpenAvailable() *enum.Enumeration {
	return enum.New(enum.Strings(available()))
}
