// Package normalizer exposes Unicode normalization forms from
// golang.org/x/text/unicode/norm.
//
// Instances are owned by the library: Instance returns the same value for a
// mode on every call and there is nothing to close.
package normalizer

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Mode selects a normalization form.
type Mode int

const (
	NFC Mode = iota
	NFD
	NFKC
	NFKD
	// NFKCCasefold is NFKC applied to case folded text.
	NFKCCasefold
)

func (m Mode) String() string {
	switch m {
	case NFC:
		return "nfc"
	case NFD:
		return "nfd"
	case NFKC:
		return "nfkc"
	case NFKD:
		return "nfkd"
	case NFKCCasefold:
		return "nfkc_cf"
	}
	return "unknown"
}

// QuickCheckResult is the answer of a quick normalization check.
type QuickCheckResult int

const (
	No QuickCheckResult = iota
	Yes
	Maybe
)

var ErrInvalidMode = errors.New("normalizer: invalid mode")

// Normalizer normalizes text to one form. It is immutable and safe for
// concurrent use.
type Normalizer struct {
	mode Mode
	form norm.Form
}

var instances = [...]*Normalizer{
	NFC:          {mode: NFC, form: norm.NFC},
	NFD:          {mode: NFD, form: norm.NFD},
	NFKC:         {mode: NFKC, form: norm.NFKC},
	NFKD:         {mode: NFKD, form: norm.NFKD},
	NFKCCasefold: {mode: NFKCCasefold, form: norm.NFKC},
}

// Instance returns the shared normalizer for mode.
func Instance(mode Mode) (*Normalizer, error) {
	if mode < 0 || int(mode) >= len(instances) {
		return nil, status.New("normalizer.Instance", status.InvalidParameter, ErrInvalidMode)
	}
	return instances[mode], nil
}

func (n *Normalizer) check(op string) error {
	if n == nil {
		return status.New(op, status.InvalidParameter, ErrInvalidMode)
	}
	return nil
}

// Mode returns the form of n.
func (n *Normalizer) Mode() Mode { return n.mode }

func (n *Normalizer) normalize(s string) string {
	if n.mode == NFKCCasefold {
		return n.form.String(cases.Fold().String(n.form.String(s)))
	}
	return n.form.String(s)
}

func (n *Normalizer) isNormal(s string) bool {
	if n.mode == NFKCCasefold {
		return n.normalize(s) == s
	}
	return n.form.IsNormalString(s)
}

// Normalize returns s in the normalizer's form.
func (n *Normalizer) Normalize(s string) (string, error) {
	if err := n.check("normalizer.Normalize"); err != nil {
		return "", err
	}
	return n.normalize(s), nil
}

// NormalizeInto writes the normalized UTF-16 form of s to dst.
func (n *Normalizer) NormalizeInto(s string, dst []uint16, capacity int) (int, error) {
	if err := n.check("normalizer.NormalizeInto"); err != nil {
		return 0, err
	}
	return buffer.FillUTF16(dst, capacity, n.normalize(s), buffer.NulTerminated)
}

// IsNormalized reports whether s is already in the normalizer's form.
func (n *Normalizer) IsNormalized(s string) (bool, error) {
	if err := n.check("normalizer.IsNormalized"); err != nil {
		return false, err
	}
	return n.isNormal(s), nil
}

// QuickCheck answers Yes when the quick check accepts all of s, Maybe when
// only a full check does, and No otherwise.
func (n *Normalizer) QuickCheck(s string) (QuickCheckResult, error) {
	if err := n.check("normalizer.QuickCheck"); err != nil {
		return No, err
	}
	switch {
	case n.mode != NFKCCasefold && n.form.QuickSpanString(s) == len(s):
		return Yes, nil
	case n.isNormal(s):
		if n.mode == NFKCCasefold {
			return Yes, nil
		}
		return Maybe, nil
	}
	return No, nil
}

// SpanQuickCheckYes returns the length in UTF-16 units of the longest prefix
// of s that passes the quick check.
func (n *Normalizer) SpanQuickCheckYes(s string) (int, error) {
	if err := n.check("normalizer.SpanQuickCheckYes"); err != nil {
		return 0, err
	}
	if n.mode == NFKCCasefold {
		end := 0
		for i, r := range s {
			if n.normalize(string(r)) != string(r) {
				break
			}
			end = i + len(string(r))
		}
		return buffer.Len16(s[:end]), nil
	}
	return buffer.Len16(s[:n.form.QuickSpanString(s)]), nil
}

// NormalizeSecondAndAppend appends the normalized form of second to first,
// which must already be normalized, renormalizing across the seam.
func (n *Normalizer) NormalizeSecondAndAppend(first, second string) (string, error) {
	if err := n.check("normalizer.NormalizeSecondAndAppend"); err != nil {
		return "", err
	}
	if n.mode == NFKCCasefold {
		return n.normalize(first + second), nil
	}
	return string(n.form.AppendString([]byte(first), second)), nil
}

// NormalizeSecondAndAppendInto is NormalizeSecondAndAppend over a UTF-16
// buffer holding first in its leading firstLength units (-1 when terminated).
func (n *Normalizer) NormalizeSecondAndAppendInto(dst []uint16, firstLength, capacity int, second string) (int, error) {
	if err := n.check("normalizer.NormalizeSecondAndAppendInto"); err != nil {
		return 0, err
	}
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	first, err := buffer.Input16(dst[:capacity], firstLength)
	if err != nil {
		return 0, err
	}
	out, _ := n.NormalizeSecondAndAppend(first, second)
	return buffer.FillUTF16(dst, capacity, out, buffer.NulTerminated)
}
