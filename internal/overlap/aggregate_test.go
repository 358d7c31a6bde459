package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ed-00/AED-EEND/internal/kaldi"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, 0.0, s.OverlapPercent, "no speech means a zero report, not NaN")
}

func TestSummarize_FoldsAcrossRecordings(t *testing.T) {
	s := Summarize([]RecordingResult{
		{RecoID: "m1", Result: Result{Union: 10, Overlap: 2}},
		{RecoID: "m2", Result: Result{Union: 30, Overlap: 6}},
	})

	assert.Equal(t, 2, s.Recordings)
	assert.InDelta(t, 40.0, s.SpeechSeconds, delta)
	assert.InDelta(t, 8.0, s.OverlapSeconds, delta)
	assert.InDelta(t, 20.0, s.OverlapPercent, delta)
}

func TestTotals_Add(t *testing.T) {
	var tot Totals
	tot.Add(Result{Union: 5, Overlap: 1})
	tot.Add(Result{Union: 3, Overlap: 0.5})
	assert.InDelta(t, 8.0, tot.SpeechSeconds, delta)
	assert.InDelta(t, 1.5, tot.OverlapSeconds, delta)
	assert.LessOrEqual(t, tot.OverlapSeconds, tot.SpeechSeconds)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("u1", "m1", "0", "5"),
		seg("u2", "m1", "2", "7"),
		seg("u3", "m1", "4", "6"),
		seg("u4", "m2", "0", "1"),
		seg("u5", "m2", "1", "2"),
		seg("bad", "m2", "oops", "2"),
	})
	assert.Equal(t, 1, dropped)

	summary, results := Analyze(groups, DefaultMinConcurrent, 4)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, summary.Recordings)
	assert.InDelta(t, 9.0, summary.SpeechSeconds, delta)  // 7 + 2
	assert.InDelta(t, 4.0, summary.OverlapSeconds, delta) // 4 + 0
	assert.InDelta(t, 100*4.0/9.0, summary.OverlapPercent, delta)
}

func TestAnalyze_AllMalformedInput(t *testing.T) {
	groups, dropped := Ingest([]kaldi.RawSegment{
		seg("u1", "m1", "x", "y"),
		seg("u2", "m2", "3", "1"),
	})
	assert.Equal(t, 2, dropped)

	summary, results := Analyze(groups, DefaultMinConcurrent, 1)
	assert.Empty(t, results)
	assert.Equal(t, Summary{}, summary)
}
