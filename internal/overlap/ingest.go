package overlap

import (
	"strconv"

	"github.com/ed-00/AED-EEND/internal/kaldi"
)

// Interval is a closed-open speech span [Start, End) in seconds.
// Invariant: End > Start. Ingest enforces this; intervals constructed by hand
// are the caller's problem.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Groups maps a recording id to the speech intervals observed in it.
// Insertion order is irrelevant. Speaker identity is not tracked here; only
// interval multiplicity matters, so two speakers with byte-identical spans
// still contribute two intervals.
type Groups map[string][]Interval

// Ingest converts raw segment records into per-recording interval groups.
//
// Records with non-numeric time fields or with end <= start are dropped and
// counted; malformed input never aborts processing of the valid remainder.
// The utterance id is ignored — the sweep has no use for it.
func Ingest(records []kaldi.RawSegment) (Groups, int) {
	groups := make(Groups)
	dropped := 0
	for _, rec := range records {
		start, err := strconv.ParseFloat(rec.Start, 64)
		if err != nil {
			dropped++
			continue
		}
		end, err := strconv.ParseFloat(rec.End, 64)
		if err != nil {
			dropped++
			continue
		}
		if end <= start {
			// Zero or negative duration is not speech.
			dropped++
			continue
		}
		groups[rec.RecoID] = append(groups[rec.RecoID], Interval{Start: start, End: end})
	}
	return groups, dropped
}

// Intervals returns the total interval count across all recordings.
func (g Groups) Intervals() int {
	n := 0
	for _, ivs := range g {
		n += len(ivs)
	}
	return n
}
