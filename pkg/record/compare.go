package record

// Comparison is the outcome of comparing two record sequences position by
// position: either the counts differ, or the first differing pair is
// reported, or the sequences are identical.
type Comparison struct {
	CountsDiffer bool
	Index        int // position of the first differing pair, -1 when none
	First        Record
	Second       Record
}

// Identical reports whether the two sequences matched exactly.
func (c Comparison) Identical() bool {
	return !c.CountsDiffer && c.Index < 0
}

// Compare walks two sequences in order and stops at the first difference.
func Compare(first, second []Record) Comparison {
	if len(first) != len(second) {
		return Comparison{CountsDiffer: true, Index: -1}
	}
	for i := range first {
		if first[i] != second[i] {
			return Comparison{Index: i, First: first[i], Second: second[i]}
		}
	}
	return Comparison{Index: -1}
}
