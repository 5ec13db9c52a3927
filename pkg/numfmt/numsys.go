package numfmt

import (
	"slices"
	"unicode/utf8"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// NumberingSystemKind is the handle kind of numbering systems.
const NumberingSystemKind = "numbering_system"

// numberingSystems maps the CLDR numeric numbering systems to their digits.
var numberingSystems = map[string]string{
	"arab":     "٠١٢٣٤٥٦٧٨٩",
	"arabext":  "۰۱۲۳۴۵۶۷۸۹",
	"beng":     "০১২৩৪৫৬৭৮৯",
	"deva":     "०१२३४५६७८९",
	"fullwide": "０１２３４５６７８９",
	"gujr":     "૦૧૨૩૪૫૬૭૮૯",
	"guru":     "੦੧੨੩੪੫੬੭੮੯",
	"hanidec":  "〇一二三四五六七八九",
	"khmr":     "០១២៣៤៥៦៧៨៩",
	"knda":     "೦೧೨೩೪೫೬೭೮೯",
	"laoo":     "໐໑໒໓໔໕໖໗໘໙",
	"latn":     "0123456789",
	"mlym":     "൦൧൨൩൪൫൬൭൮൯",
	"mong":     "᠐᠑᠒᠓᠔᠕᠖᠗᠘᠙",
	"mymr":     "၀၁၂၃၄၅၆၇၈၉",
	"orya":     "୦୧୨୩୪୫୬୭୮୯",
	"tamldec":  "௦௧௨௩௪௫௬௭௮௯",
	"telu":     "౦౧౨౩౪౫౬౭౮౯",
	"thai":     "๐๑๒๓๔๕๖๗๘๙",
	"tibt":     "༠༡༢༣༤༥༦༧༨༩",
}

func digitsOf(name string) ([10]rune, bool) {
	var out [10]rune
	s, ok := numberingSystems[name]
	if !ok {
		return out, false
	}
	for i := range out {
		r, size := utf8.DecodeRuneInString(s)
		out[i] = r
		s = s[size:]
	}
	return out, true
}

// systemByZero finds the numbering system whose zero digit is zero.
func systemByZero(zero string) (string, bool) {
	for name, digits := range numberingSystems {
		if r, _ := utf8.DecodeRuneInString(digits); string(r) == zero {
			return name, true
		}
	}
	return "", false
}

// NumberingSystem describes the digits a locale formats numbers with.
type NumberingSystem struct {
	lc     handle.Lifecycle
	name   string
	digits [10]rune
}

// NewNumberingSystem returns the numbering system of the locale id: its
// "numbers" keyword or the default of the language.
func NewNumberingSystem(id string) (*NumberingSystem, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	name := tag.TypeForKey("nu")
	if _, ok := numberingSystems[name]; !ok {
		name, ok = systemByZero(symbolsFor(tag)[ZeroDigit])
		if !ok {
			name = "latn"
		}
	}
	return NumberingSystemByName(name)
}

// NumberingSystemByName returns the numbering system called name.
func NumberingSystemByName(name string) (*NumberingSystem, error) {
	digits, ok := digitsOf(name)
	if !ok {
		return nil, status.New("numfmt.NumberingSystemByName", status.InvalidParameter, ErrUnknownNumberingSystem)
	}
	ns := &NumberingSystem{name: name, digits: digits}
	ns.lc.Open(NumberingSystemKind)
	return ns, nil
}

func (ns *NumberingSystem) live(op string) error {
	if ns == nil {
		return handle.Nil(op)
	}
	return ns.lc.Check(op)
}

func (ns *NumberingSystem) Name() (string, error) {
	if err := ns.live("numfmt.NumberingSystem.Name"); err != nil {
		return "", err
	}
	return ns.name, nil
}

// Radix is 10 for every supported system.
func (ns *NumberingSystem) Radix() (int, error) {
	if err := ns.live("numfmt.NumberingSystem.Radix"); err != nil {
		return 0, err
	}
	return 10, nil
}

// IsAlgorithmic is false: only numeric systems are supported.
func (ns *NumberingSystem) IsAlgorithmic() (bool, error) {
	if err := ns.live("numfmt.NumberingSystem.IsAlgorithmic"); err != nil {
		return false, err
	}
	return false, nil
}

// Description returns the ten digits of the system.
func (ns *NumberingSystem) Description() (string, error) {
	if err := ns.live("numfmt.NumberingSystem.Description"); err != nil {
		return "", err
	}
	return string(ns.digits[:]), nil
}

func (ns *NumberingSystem) Close() error {
	if ns == nil {
		return handle.Nil("numfmt.NumberingSystem.Close")
	}
	return ns.lc.Release("numfmt.NumberingSystem.Close")
}

// OpenAvailableNumberingSystems enumerates the supported system names in
// sorted order.
func OpenAvailableNumberingSystems() *enum.Enumeration {
	names := make([]string, 0, len(numberingSystems))
	for name := range numberingSystems {
		names = append(names, name)
	}
	slices.Sort(names)
	return enum.FromStrings(names...)
}
