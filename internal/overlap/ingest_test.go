package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ed-00/AED-EEND/internal/kaldi"
)

func seg(utt, reco, start, end string) kaldi.RawSegment {
	return kaldi.RawSegment{UttID: utt, RecoID: reco, Start: start, End: end}
}

func TestIngest_GroupsByRecording(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("u1", "meeting_1", "0.0", "2.5"),
		seg("u2", "meeting_2", "1.0", "3.0"),
		seg("u3", "meeting_1", "2.0", "4.0"),
	})

	assert.Zero(t, dropped)
	require.Len(t, groups, 2)
	assert.Equal(t, []Interval{{0.0, 2.5}, {2.0, 4.0}}, groups["meeting_1"])
	assert.Equal(t, []Interval{{1.0, 3.0}}, groups["meeting_2"])
	assert.Equal(t, 3, groups.Intervals())
}

func TestIngest_SkipsMalformedTimes(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("u1", "m1", "abc", "2.0"),
		seg("u2", "m1", "1.0", "xyz"),
		seg("u3", "m1", "1.0", "2.0"),
	})

	assert.Equal(t, 2, dropped)
	require.Len(t, groups["m1"], 1)
	assert.Equal(t, Interval{1.0, 2.0}, groups["m1"][0])
}

func TestIngest_SkipsNonPositiveDuration(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("u1", "m1", "2.0", "2.0"), // zero duration
		seg("u2", "m1", "5.0", "3.0"), // reversed
		seg("u3", "m1", "0.5", "1.5"),
	})

	assert.Equal(t, 2, dropped)
	assert.Len(t, groups["m1"], 1)
}

func TestIngest_KeepsDuplicateIntervals(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("spkA-001", "m1", "1.0", "3.0"),
		seg("spkB-001", "m1", "1.0", "3.0"),
	})

	assert.Zero(t, dropped)
	// Two independent speaker turns over the same span stay two intervals.
	assert.Len(t, groups["m1"], 2)
}

func TestIngest_EmptyInput(t *testing.T) {
	groups, dropped := Ingest(nil)
	assert.Zero(t, dropped)
	assert.Empty(t, groups)
}

func TestInterval_Duration(t *testing.T) {
	assert.InDelta(t, 1.25, Interval{Start: 0.25, End: 1.5}.Duration(), delta)
}
