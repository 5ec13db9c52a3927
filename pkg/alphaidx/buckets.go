package alphaidx

import (
	"slices"

	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/status"
)

type layout struct {
	labels      []string
	labelBucket []int
}

// build lays out the buckets and files the records into them.
func (x *Index) build() {
	if x.buckets != nil {
		return
	}
	labels := x.sortedLabels()
	l := layout{labels: labels, labelBucket: make([]int, len(labels))}
	buckets := []bucket{{label: x.underflow, typ: Underflow}}
	for i, label := range labels {
		l.labelBucket[i] = len(buckets)
		buckets = append(buckets, bucket{label: label, typ: Normal})
		if i+1 < len(labels) && scriptOf(label) != scriptOf(labels[i+1]) {
			buckets = append(buckets, bucket{label: x.inflow, typ: Inflow})
		}
	}
	buckets = append(buckets, bucket{label: x.overflow, typ: Overflow})

	records := slices.Clone(x.records)
	sorter := x.sorter.Get()
	slices.SortStableFunc(records, func(a, b record) int {
		r, _ := sorter.Compare(a.name, b.name)
		return int(r)
	})
	for _, r := range records {
		i := x.bucketOf(l, len(buckets), r.name)
		buckets[i].records = append(buckets[i].records, r)
	}
	x.buckets = buckets
	x.layout = l
}

func (x *Index) bucketOf(l layout, count int, name string) int {
	primary := x.primary.Get()
	at := -1
	for i, label := range l.labels {
		r, _ := primary.Compare(label, name)
		if r == collator.Greater {
			break
		}
		at = i
	}
	if at < 0 {
		return 0
	}
	script, labelScript := scriptOf(name), scriptOf(l.labels[at])
	switch {
	case script == "" || script == labelScript:
		return l.labelBucket[at]
	case at == len(l.labels)-1:
		return count - 1
	case scriptOf(l.labels[at+1]) != labelScript:
		return l.labelBucket[at] + 1
	}
	return l.labelBucket[at]
}

// BucketCount returns the number of buckets, the underflow and overflow
// buckets included.
func (x *Index) BucketCount() (int, error) {
	if err := x.live("alphaidx.BucketCount"); err != nil {
		return 0, err
	}
	x.build()
	return len(x.buckets), nil
}

// BucketIndex returns the index of the bucket name would be filed in.
func (x *Index) BucketIndex(name string) (int, error) {
	if err := x.live("alphaidx.BucketIndex"); err != nil {
		return 0, err
	}
	x.build()
	return x.bucketOf(x.layout, len(x.buckets), name), nil
}

// NextBucket advances to the next bucket and reports whether there is one.
// It fails with EnumOutOfSync when labels or records changed since the
// iteration started.
func (x *Index) NextBucket() (bool, error) {
	const op = "alphaidx.NextBucket"
	if err := x.live(op); err != nil {
		return false, err
	}
	if x.bucketAt >= 0 && x.synced != x.version {
		return false, status.New(op, status.EnumOutOfSync, ErrOutOfSync)
	}
	if x.bucketAt < 0 {
		x.synced = x.version
	}
	x.build()
	if x.bucketAt < len(x.buckets) {
		x.bucketAt++
	}
	x.recordAt = -1
	return x.bucketAt < len(x.buckets), nil
}

// ResetBucketIterator restarts bucket iteration, picking up changes.
func (x *Index) ResetBucketIterator() error {
	if err := x.live("alphaidx.ResetBucketIterator"); err != nil {
		return err
	}
	x.bucketAt, x.recordAt = -1, -1
	x.synced = x.version
	return nil
}

func (x *Index) current(op string) (*bucket, error) {
	if err := x.live(op); err != nil {
		return nil, err
	}
	if x.synced != x.version && x.bucketAt >= 0 {
		return nil, status.New(op, status.EnumOutOfSync, ErrOutOfSync)
	}
	if x.buckets == nil || x.bucketAt < 0 || x.bucketAt >= len(x.buckets) {
		return nil, status.New(op, status.InvalidState, ErrNoBucket)
	}
	return &x.buckets[x.bucketAt], nil
}

// CurrentBucket returns the index of the current bucket.
func (x *Index) CurrentBucket() (int, error) {
	if _, err := x.current("alphaidx.CurrentBucket"); err != nil {
		return 0, err
	}
	return x.bucketAt, nil
}

func (x *Index) BucketLabel() (string, error) {
	b, err := x.current("alphaidx.BucketLabel")
	if err != nil {
		return "", err
	}
	return b.label, nil
}

func (x *Index) BucketLabelType() (LabelType, error) {
	b, err := x.current("alphaidx.BucketLabelType")
	if err != nil {
		return Normal, err
	}
	return b.typ, nil
}

func (x *Index) BucketRecordCount() (int, error) {
	b, err := x.current("alphaidx.BucketRecordCount")
	if err != nil {
		return 0, err
	}
	return len(b.records), nil
}

// NextRecord advances to the next record of the current bucket.
func (x *Index) NextRecord() (bool, error) {
	b, err := x.current("alphaidx.NextRecord")
	if err != nil {
		return false, err
	}
	if x.recordAt < len(b.records) {
		x.recordAt++
	}
	return x.recordAt < len(b.records), nil
}

// ResetRecordIterator restarts the records of the current bucket.
func (x *Index) ResetRecordIterator() error {
	if _, err := x.current("alphaidx.ResetRecordIterator"); err != nil {
		return err
	}
	x.recordAt = -1
	return nil
}

func (x *Index) currentRecord(op string) (record, error) {
	b, err := x.current(op)
	if err != nil {
		return record{}, err
	}
	if x.recordAt < 0 || x.recordAt >= len(b.records) {
		return record{}, status.New(op, status.InvalidState, ErrNoRecord)
	}
	return b.records[x.recordAt], nil
}

func (x *Index) RecordName() (string, error) {
	r, err := x.currentRecord("alphaidx.RecordName")
	return r.name, err
}

func (x *Index) RecordData() (any, error) {
	r, err := x.currentRecord("alphaidx.RecordData")
	return r.data, err
}
