package overlap

// Totals accumulates speech and overlap time across recordings.
// Both sums grow monotonically and OverlapSeconds <= SpeechSeconds holds
// throughout, since every sweep reports Overlap <= Union.
type Totals struct {
	SpeechSeconds  float64
	OverlapSeconds float64
}

// Add folds one recording's result into the totals.
func (t *Totals) Add(r Result) {
	t.SpeechSeconds += r.Union
	t.OverlapSeconds += r.Overlap
}

// Summary is the read-only report produced after aggregation.
type Summary struct {
	Recordings     int     `json:"recordings"`
	SpeechSeconds  float64 `json:"total_speech_seconds"`
	OverlapSeconds float64 `json:"total_overlap_seconds"`
	OverlapPercent float64 `json:"overlap_percentage"`
}

// Summarize reduces per-recording results to a corpus-level summary.
// An empty result set yields the zero summary: no speech observed is a
// trivial report, not an error.
func Summarize(results []RecordingResult) Summary {
	var t Totals
	for _, r := range results {
		t.Add(r.Result)
	}
	s := Summary{
		Recordings:     len(results),
		SpeechSeconds:  t.SpeechSeconds,
		OverlapSeconds: t.OverlapSeconds,
	}
	if t.SpeechSeconds > 0 {
		s.OverlapPercent = 100 * t.OverlapSeconds / t.SpeechSeconds
	}
	return s
}

// Analyze runs the full pipeline over already-ingested groups: sweep each
// recording (optionally in parallel) and fold the results.
func Analyze(groups Groups, minConcurrent, workers int) (Summary, []RecordingResult) {
	results := SweepAll(groups, minConcurrent, workers)
	return Summarize(results), results
}
