package uchar

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/status"
)

// NameChoice selects which name CharName returns.
type NameChoice int

const (
	// UnicodeName is the Name property; characters without one have "".
	UnicodeName NameChoice = iota
	// ExtendedName is the Name property, or a label such as
	// "<control-0007>" for characters without one.
	ExtendedName
)

const (
	cjkPrefix    = "CJK UNIFIED IDEOGRAPH-"
	hangulPrefix = "HANGUL SYLLABLE "
	hangulBase   = 0xac00
	hangulCount  = 11172
)

var (
	jamoL = [...]string{"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H"}
	jamoV = [...]string{"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I"}
	jamoT = [...]string{"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H"}
)

// CharName returns the name of r.
func CharName(r rune, choice NameChoice) (string, error) {
	if err := valid("uchar.CharName", r); err != nil {
		return "", err
	}
	return name(r, choice), nil
}

// CharNameInto writes the name of r to a caller buffer.
func CharNameInto(r rune, choice NameChoice, dst []byte, capacity int) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	n, err := CharName(r, choice)
	if err != nil {
		return 0, err
	}
	return buffer.FillString(dst, capacity, n, buffer.NulTerminated)
}

func name(r rune, choice NameChoice) string {
	if n := unicodeName(r); n != "" || choice == UnicodeName {
		return n
	}
	return fmt.Sprintf("<%s-%04X>", label(r), r)
}

func unicodeName(r rune) string {
	if n := runenames.Name(r); n != "" && !strings.HasPrefix(n, "<") {
		return n
	}
	switch {
	case r >= hangulBase && r < hangulBase+hangulCount:
		s := int(r - hangulBase)
		return hangulPrefix + jamoL[s/588] + jamoV[(s%588)/28] + jamoT[s%28]
	case unicode.Is(unicode.Unified_Ideograph, r):
		return fmt.Sprintf("%s%04X", cjkPrefix, r)
	}
	return ""
}

func label(r rune) string {
	switch {
	case isNoncharacter(r):
		return "noncharacter"
	case unicode.Is(unicode.Cc, r):
		return "control"
	case unicode.Is(unicode.Cs, r):
		return "surrogate"
	case unicode.Is(unicode.Co, r):
		return "private-use"
	}
	return "unassigned"
}

func isNoncharacter(r rune) bool {
	return (r >= 0xfdd0 && r <= 0xfdef) || r&0xfffe == 0xfffe
}

var (
	names    = cache.NewMemory[map[string]rune](cache.WithCleanupInterval(0))
	namesTTL atomic.Int64
)

func init() { namesTTL.Store(int64(-1)) }

// SetNameIndexTTL sets how long the reverse name index built by CharFromName
// is kept. A negative duration keeps it for the life of the process.
func SetNameIndexTTL(d time.Duration) {
	namesTTL.Store(int64(d))
	_ = names.Clear(context.Background())
}

func buildIndex(ctx context.Context) (map[string]rune, time.Duration, error) {
	start := time.Now()
	index := make(map[string]rune, 1<<15)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		n := runenames.Name(r)
		if n == "" || strings.HasPrefix(n, "<") ||
			strings.HasPrefix(n, cjkPrefix) || strings.HasPrefix(n, hangulPrefix) {
			continue
		}
		index[n] = r
	}
	diag.Debug(ctx, "character name index built",
		slog.Int("names", len(index)), slog.Duration("took", time.Since(start)))
	return index, time.Duration(namesTTL.Load()), nil
}

// CharFromName returns the character with the given name. Matching ignores
// case. Extended names ("<control-0007>") are accepted.
func CharFromName(n string) (rune, error) {
	key := strings.ToUpper(strings.TrimSpace(n))
	if r, ok := algorithmic(key); ok {
		return r, nil
	}
	index, err := names.GetOrSet(context.Background(), "names", buildIndex)
	if err != nil {
		return 0, status.New("uchar.CharFromName", status.InternalProgram, err)
	}
	if r, ok := index[key]; ok {
		return r, nil
	}
	return 0, status.New("uchar.CharFromName", status.InvalidCharFound, ErrUnknownName)
}

// algorithmic resolves names that are derived from the code point rather
// than stored.
func algorithmic(key string) (rune, bool) {
	switch {
	case strings.HasPrefix(key, cjkPrefix):
		return parseHex(strings.TrimPrefix(key, cjkPrefix), key, UnicodeName)
	case strings.HasPrefix(key, hangulPrefix):
		for s := range hangulCount {
			r := rune(hangulBase + s)
			if unicodeName(r) == key {
				return r, true
			}
		}
	case strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">"):
		i := strings.LastIndexByte(key, '-')
		if i < 0 {
			return 0, false
		}
		return parseHex(key[i+1:len(key)-1], strings.ToLower(key[:i])+key[i:], ExtendedName)
	}
	return 0, false
}

func parseHex(hex, want string, choice NameChoice) (rune, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, false
	}
	r := rune(v)
	return r, name(r, choice) == want
}
