package patterngen

import (
	"strings"

	"github.com/dmitrymomot/intl/pkg/status"
)

// BestPattern returns the locale pattern closest to skeleton with its field
// widths adjusted to the request. The letters j and C stand for the
// locale's preferred hour letter, J for it without a day period.
func (g *Generator) BestPattern(skel string) (string, error) {
	const op = "patterngen.BestPattern"
	if err := g.live(op); err != nil {
		return "", err
	}
	req, err := parseSkeleton(op, g.localHour(skel))
	if err != nil {
		return "", err
	}
	if req.empty() {
		return "", status.New(op, status.InvalidParameter, ErrEmptySkeleton)
	}
	return g.best(req), nil
}

// ReplaceFieldTypes rewrites the fields of pattern to the letters and
// widths of skeleton, leaving literals alone.
func (g *Generator) ReplaceFieldTypes(pattern, skel string) (string, error) {
	const op = "patterngen.ReplaceFieldTypes"
	if err := g.live(op); err != nil {
		return "", err
	}
	tokens, err := tokenize(op, pattern)
	if err != nil {
		return "", err
	}
	req, err := parseSkeleton(op, g.localHour(skel))
	if err != nil {
		return "", err
	}
	return g.adjust(tokens, req), nil
}

func (g *Generator) localHour(skel string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'j', 'J', 'C':
			return g.hourChar
		}
		return r
	}, skel)
}

func (g *Generator) best(req skeleton) string {
	pattern, missing := g.closest(req)
	if missing.empty() {
		return pattern
	}
	date, clock := req.split()
	if !date.empty() && !clock.empty() {
		return g.glue(g.best(date), g.best(clock))
	}
	for !missing.empty() {
		var more string
		more, missing = g.closest(missing)
		pattern += " " + more
	}
	return pattern
}

// closest picks the stored pattern at the smallest distance and adjusts it.
// It returns the requested fields the pattern could not provide.
func (g *Generator) closest(req skeleton) (string, skeleton) {
	var (
		bestKey     string
		bestMissing skeleton
		bestDist    = -1
	)
	for _, key := range g.skeletons.Snapshot() {
		have := g.parsed[key]
		d, missing := distance(req, have)
		if req[groupFraction].count > 0 && have[groupFraction].count == 0 && have[groupSecond].count > 0 {
			d -= missingField
			missing[groupFraction] = field{}
		}
		if bestDist < 0 || d < bestDist {
			bestKey, bestDist, bestMissing = key, d, missing
		}
		if d == 0 {
			break
		}
	}
	tokens, _ := tokenize("", g.patterns[bestKey])
	return g.adjust(tokens, req), bestMissing
}

// adjust sets the fields of tokens to the requested widths. Hour, minute
// and second keep the pattern's width; a fraction requested from a pattern
// without one follows the seconds.
func (g *Generator) adjust(tokens []token, req skeleton) string {
	out := make([]token, 0, len(tokens)+2)
	hasFraction := false
	for _, t := range tokens {
		if t.field.count > 0 && letterGroups[t.field.letter] == groupFraction {
			hasFraction = true
		}
	}
	for _, t := range tokens {
		f := t.field
		if f.count == 0 {
			out = append(out, t)
			continue
		}
		grp := letterGroups[f.letter]
		w := req[grp]
		if w.count > 0 {
			switch grp {
			case groupHour:
				f.letter = w.letter
			case groupMinute, groupSecond:
			case groupZone, groupFraction, groupDayPeriod:
				f = w
			default:
				if f.text() != w.text() || f.letter == 'E' && w.letter == 'e' {
					f = w
				} else {
					f.count = w.count
				}
			}
		}
		out = append(out, token{field: f})
		if grp == groupSecond && !hasFraction && req[groupFraction].count > 0 {
			out = append(out, token{raw: quoteLiteral(g.decimal)}, token{field: req[groupFraction]})
		}
	}
	return render(out)
}

func (g *Generator) glue(date, clock string) string {
	var b strings.Builder
	glue := g.dateTime
	for i := 0; i < len(glue); i++ {
		if i+2 < len(glue) && glue[i] == '{' && glue[i+2] == '}' {
			switch glue[i+1] {
			case '0':
				b.WriteString(clock)
				i += 2
				continue
			case '1':
				b.WriteString(date)
				i += 2
				continue
			}
		}
		b.WriteByte(glue[i])
	}
	return b.String()
}
