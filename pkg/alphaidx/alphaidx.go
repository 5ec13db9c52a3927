// Package alphaidx groups names under index labels ("A", "B", ... "Z") the
// way a phone book or a contact list does.
//
// Labels come from the locale and AddLabels; records are sorted into the
// bucket of the greatest label not after them at primary strength. Names
// before the first label fall into the underflow bucket, names of another
// script after the last label into the overflow bucket and names of a script
// between two label scripts into an inflow bucket.
package alphaidx

import (
	"errors"
	"slices"

	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/uset"
)

// Kind is the handle kind of alphabetic indexes.
const Kind = "alphabetic_index"

// DefaultMaxLabelCount is the label limit of a new index.
const DefaultMaxLabelCount = 99

const ellipsis = "…"

// LabelType tells normal buckets from the catch-all ones.
type LabelType int

const (
	Normal LabelType = iota
	Underflow
	Inflow
	Overflow
)

func (t LabelType) String() string {
	switch t {
	case Underflow:
		return "underflow"
	case Inflow:
		return "inflow"
	case Overflow:
		return "overflow"
	}
	return "normal"
}

type record struct {
	name string
	data any
}

type bucket struct {
	label   string
	typ     LabelType
	records []record
}

// Index is an alphabetic index. Not safe for concurrent use.
type Index struct {
	primary   handle.Ref[*collator.Collator]
	sorter    handle.Ref[*collator.Collator]
	id        string
	labels    []string
	records   []record
	buckets   []bucket
	layout    layout
	inflow    string
	overflow  string
	underflow string
	maxLabels int
	version   uint64
	synced    uint64
	bucketAt  int
	recordAt  int
	lc        handle.Lifecycle
}

// New opens an index with the labels of the locale id.
func New(id string) (*Index, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	x := &Index{
		id:        locale.ID(tag),
		inflow:    ellipsis,
		overflow:  ellipsis,
		underflow: ellipsis,
		maxLabels: DefaultMaxLabelCount,
		bucketAt:  -1,
		recordAt:  -1,
	}
	primary, err := collator.New(x.id)
	if err != nil {
		return nil, err
	}
	if err := primary.SetStrength(collator.Primary); err != nil {
		_ = primary.Close()
		return nil, err
	}
	sorter, err := collator.New(x.id)
	if err != nil {
		_ = primary.Close()
		return nil, err
	}
	x.primary = handle.Own(primary)
	x.sorter = handle.Own(sorter)
	if err := x.addLocale(x.id); err != nil {
		_ = x.primary.Release()
		_ = x.sorter.Release()
		return nil, err
	}
	x.lc.Open(Kind)
	return x, nil
}

func (x *Index) live(op string) error {
	if x == nil {
		return handle.Nil(op)
	}
	return x.lc.Check(op)
}

// Kind returns the handle kind.
func (x *Index) Kind() string { return Kind }

// Locale returns the canonical ID the index was opened for.
func (x *Index) Locale() string { return x.id }

// changed drops the bucket list and puts running iterations out of sync.
func (x *Index) changed() {
	x.buckets = nil
	x.version++
}

// AddLabels adds the code points and strings of set as labels.
func (x *Index) AddLabels(set *uset.Set) error {
	if err := x.live("alphaidx.AddLabels"); err != nil {
		return err
	}
	labels, err := labelsOf(set)
	if err != nil {
		return err
	}
	x.labels = append(x.labels, labels...)
	x.changed()
	return nil
}

// AddLabelsForLocale adds the index characters of the locale id.
func (x *Index) AddLabelsForLocale(id string) error {
	if err := x.live("alphaidx.AddLabelsForLocale"); err != nil {
		return err
	}
	return x.addLocale(id)
}

func (x *Index) addLocale(id string) error {
	set, err := labelSet(id)
	if err != nil {
		return err
	}
	defer func() { _ = set.Close() }()
	labels, err := labelsOf(set)
	if err != nil {
		return err
	}
	x.labels = append(x.labels, labels...)
	x.changed()
	return nil
}

// AddRecord files name with its data. Running bucket iterations go out of
// sync.
func (x *Index) AddRecord(name string, data any) error {
	if err := x.live("alphaidx.AddRecord"); err != nil {
		return err
	}
	x.records = append(x.records, record{name: name, data: data})
	x.changed()
	return nil
}

// ClearRecords removes every record and keeps the labels.
func (x *Index) ClearRecords() error {
	if err := x.live("alphaidx.ClearRecords"); err != nil {
		return err
	}
	if len(x.records) > 0 {
		x.records = nil
		x.changed()
	}
	return nil
}

// RecordCount returns the number of records.
func (x *Index) RecordCount() (int, error) {
	if err := x.live("alphaidx.RecordCount"); err != nil {
		return 0, err
	}
	return len(x.records), nil
}

func (x *Index) MaxLabelCount() (int, error) {
	if err := x.live("alphaidx.MaxLabelCount"); err != nil {
		return 0, err
	}
	return x.maxLabels, nil
}

// SetMaxLabelCount limits the number of labels; extra labels are dropped
// evenly across the alphabet.
func (x *Index) SetMaxLabelCount(n int) error {
	const op = "alphaidx.SetMaxLabelCount"
	if err := x.live(op); err != nil {
		return err
	}
	if n <= 0 {
		return status.New(op, status.InvalidParameter, ErrMaxLabelCount)
	}
	x.maxLabels = n
	x.changed()
	return nil
}

func (x *Index) InflowLabel() (string, error) {
	if err := x.live("alphaidx.InflowLabel"); err != nil {
		return "", err
	}
	return x.inflow, nil
}

func (x *Index) SetInflowLabel(label string) error {
	if err := x.live("alphaidx.SetInflowLabel"); err != nil {
		return err
	}
	x.inflow = label
	x.changed()
	return nil
}

func (x *Index) OverflowLabel() (string, error) {
	if err := x.live("alphaidx.OverflowLabel"); err != nil {
		return "", err
	}
	return x.overflow, nil
}

func (x *Index) SetOverflowLabel(label string) error {
	if err := x.live("alphaidx.SetOverflowLabel"); err != nil {
		return err
	}
	x.overflow = label
	x.changed()
	return nil
}

func (x *Index) UnderflowLabel() (string, error) {
	if err := x.live("alphaidx.UnderflowLabel"); err != nil {
		return "", err
	}
	return x.underflow, nil
}

func (x *Index) SetUnderflowLabel(label string) error {
	if err := x.live("alphaidx.SetUnderflowLabel"); err != nil {
		return err
	}
	x.underflow = label
	x.changed()
	return nil
}

// Collator returns a copy of the collator records are sorted with.
func (x *Index) Collator() (*collator.Collator, error) {
	if err := x.live("alphaidx.Collator"); err != nil {
		return nil, err
	}
	return x.sorter.Get().Clone()
}

// Close releases the index and its collators.
func (x *Index) Close() error {
	if x == nil {
		return handle.Nil("alphaidx.Close")
	}
	if err := x.lc.Release("alphaidx.Close"); err != nil {
		return err
	}
	x.records, x.buckets = nil, nil
	return errors.Join(x.primary.Release(), x.sorter.Release())
}

// sortedLabels orders the labels, drops primary duplicates and thins them
// out to the label limit.
func (x *Index) sortedLabels() []string {
	coll := x.primary.Get()
	labels := slices.Clone(x.labels)
	_ = coll.Sort(labels)
	out := labels[:0]
	for _, l := range labels {
		if len(out) > 0 {
			if eq, _ := coll.Equal(out[len(out)-1], l); eq {
				continue
			}
		}
		out = append(out, l)
	}
	if len(out) <= x.maxLabels {
		return out
	}
	thin := make([]string, 0, x.maxLabels)
	for i := range x.maxLabels {
		thin = append(thin, out[i*len(out)/x.maxLabels])
	}
	return thin
}
