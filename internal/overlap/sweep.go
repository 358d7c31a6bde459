package overlap

import (
	"sort"
	"sync"
)

// timeEpsilon absorbs floating-point jitter in event-time comparisons.
// Gaps at or below this width contribute no duration.
const timeEpsilon = 1e-9

// DefaultMinConcurrent is the interval multiplicity that counts as
// overlapped speech: two or more intervals active at once.
const DefaultMinConcurrent = 2

// boundary is an ephemeral sweep event: +1 opens an interval, -1 closes one.
type boundary struct {
	t     float64
	delta int
}

// Result holds the sweep output for a single recording.
type Result struct {
	Union   float64 // seconds with at least one interval active
	Overlap float64 // seconds with minConcurrent or more intervals active
}

// RecordingResult pairs a recording id with its sweep result.
type RecordingResult struct {
	RecoID string
	Result
}

// Sweep computes the union and overlap duration of one recording's
// intervals. minConcurrent is the multiplicity threshold for "overlap";
// values below 1 fall back to DefaultMinConcurrent.
func Sweep(intervals []Interval, minConcurrent int) Result {
	if len(intervals) == 0 {
		return Result{}
	}
	if minConcurrent < 1 {
		minConcurrent = DefaultMinConcurrent
	}

	events := make([]boundary, 0, 2*len(intervals))
	for _, iv := range intervals {
		events = append(events,
			boundary{t: iv.Start, delta: +1},
			boundary{t: iv.End, delta: -1})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].t < events[j].t })

	var res Result
	active := 0
	last := events[0].t
	for _, e := range events {
		if dt := e.t - last; dt > timeEpsilon {
			if active > 0 {
				res.Union += dt
			}
			if active >= minConcurrent {
				res.Overlap += dt
			}
		}
		active += e.delta
		last = e.t
	}
	return res
}

// SweepAll sweeps every recording in groups and returns the per-recording
// results sorted by recording id.
//
// Sweeps are independent, so when workers > 1 they run on that many
// goroutines; each worker writes only its own slots of the result slice, so
// no locking is needed beyond the final wait.
func SweepAll(groups Groups, minConcurrent, workers int) []RecordingResult {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]RecordingResult, len(ids))
	if workers <= 1 || len(ids) < 2 {
		for i, id := range ids {
			out[i] = RecordingResult{RecoID: id, Result: Sweep(groups[id], minConcurrent)}
		}
		return out
	}

	if workers > len(ids) {
		workers = len(ids)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				id := ids[i]
				out[i] = RecordingResult{RecoID: id, Result: Sweep(groups[id], minConcurrent)}
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
