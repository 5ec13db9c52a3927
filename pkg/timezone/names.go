package timezone

import (
	"strings"
	"time"

	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// DisplayStyle selects the form of a zone display name.
type DisplayStyle int

const (
	// Long is the full name, "Pacific Standard Time".
	Long DisplayStyle = iota
	// Short is the abbreviation, "PST".
	Short
	// ShortGMT is the offset, "-0800".
	ShortGMT
	// LongGMT is the localized offset, "GMT-08:00".
	LongGMT
)

// longNames are the English names of common abbreviations.
var longNames = map[string]string{
	"UTC":  "Coordinated Universal Time",
	"GMT":  "Greenwich Mean Time",
	"BST":  "British Summer Time",
	"WET":  "Western European Standard Time",
	"WEST": "Western European Summer Time",
	"CET":  "Central European Standard Time",
	"CEST": "Central European Summer Time",
	"EET":  "Eastern European Standard Time",
	"EEST": "Eastern European Summer Time",
	"MSK":  "Moscow Standard Time",
	"EST":  "Eastern Standard Time",
	"EDT":  "Eastern Daylight Time",
	"CST":  "Central Standard Time",
	"CDT":  "Central Daylight Time",
	"MST":  "Mountain Standard Time",
	"MDT":  "Mountain Daylight Time",
	"PST":  "Pacific Standard Time",
	"PDT":  "Pacific Daylight Time",
	"AKST": "Alaska Standard Time",
	"AKDT": "Alaska Daylight Time",
	"HST":  "Hawaii-Aleutian Standard Time",
	"JST":  "Japan Standard Time",
	"KST":  "Korean Standard Time",
	"AEST": "Australian Eastern Standard Time",
	"AEDT": "Australian Eastern Daylight Time",
	"ACST": "Australian Central Standard Time",
	"ACDT": "Australian Central Daylight Time",
	"AWST": "Australian Western Standard Time",
	"NZST": "New Zealand Standard Time",
	"NZDT": "New Zealand Daylight Time",
}

// sample returns a time in the coming year with the requested daylight
// saving state, or now when the zone never has it.
func (z *Zone) sample(daylight bool) time.Time {
	now := time.Now()
	if _, dst := z.at(now); dst == daylight {
		return now
	}
	for _, t := range z.transitions(now, now.AddDate(1, 0, 0)) {
		if _, dst := z.at(t); dst == daylight {
			return t
		}
	}
	return now
}

// DisplayName returns the name of the zone for the locale id. Long names are
// only known in English; other locales and unknown abbreviations get the
// LongGMT form. Numeric abbreviations ("+03") are shown in GMT form too.
func (z *Zone) DisplayName(id string, daylight bool, style DisplayStyle) (string, error) {
	if err := z.live("timezone.DisplayName"); err != nil {
		return "", err
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return "", err
	}
	t := z.sample(daylight)
	total, _ := z.at(t)
	abbr, _ := t.In(z.loc).Zone()
	numeric := abbr == "" || strings.ContainsAny(abbr[:1], "+-0123456789") || strings.HasPrefix(abbr, "GMT+") || strings.HasPrefix(abbr, "GMT-")

	switch style {
	case Short:
		if numeric {
			return formatGMT(total, true), nil
		}
		return abbr, nil
	case Long:
		base, _ := tag.Base()
		if name, ok := longNames[abbr]; ok && base.String() == "en" {
			return name, nil
		}
		return formatGMT(total, true), nil
	case ShortGMT:
		return formatGMT(total, false), nil
	case LongGMT:
		return formatGMT(total, true), nil
	}
	return "", status.New("timezone.DisplayName", status.InvalidParameter, ErrInvalidStyle)
}
