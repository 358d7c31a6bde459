// Package stats summarizes Kaldi-style data directories and compares
// train/eval splits: recording and speaker counts, total audio duration and
// cross-split id overlap. Speaker overlap between splits is dataset leakage
// and is the one condition callers treat as a failure.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ed-00/AED-EEND/internal/kaldi"
)

// Dataset is the summary of one Kaldi-style data directory.
type Dataset struct {
	Dir        string
	Recordings map[string]struct{}
	Speakers   map[string]struct{}
	Utterances map[string]struct{}
	Durations  map[string]float64 // recording id -> seconds
}

// TotalSeconds sums the known recording durations.
func (d *Dataset) TotalSeconds() float64 {
	total := 0.0
	for _, dur := range d.Durations {
		total += dur
	}
	return total
}

// Load summarizes a data directory. The directory itself must exist;
// individual tables (wav.scp, spk2utt, segments, reco2dur) may be absent and
// simply contribute nothing, matching how partially-built recipe dirs look.
func Load(dataDir string) (*Dataset, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir: %s is not a directory", dataDir)
	}

	wavScp := readTableOrEmpty(filepath.Join(dataDir, "wav.scp"))
	spk2utt := readSpk2UttOrEmpty(filepath.Join(dataDir, "spk2utt"))
	segments := readSegmentsOrEmpty(filepath.Join(dataDir, "segments"))

	ds := &Dataset{
		Dir:        dataDir,
		Recordings: make(map[string]struct{}, len(wavScp)),
		Speakers:   make(map[string]struct{}, len(spk2utt)),
		Utterances: make(map[string]struct{}),
	}
	for reco := range wavScp {
		ds.Recordings[reco] = struct{}{}
	}
	for spk, utts := range spk2utt {
		ds.Speakers[spk] = struct{}{}
		for _, utt := range utts {
			ds.Utterances[utt] = struct{}{}
		}
	}
	ds.Durations = durations(dataDir, wavScp, segments)
	return ds, nil
}

// durations resolves per-recording durations in priority order: reco2dur
// entries first, then WAV headers for plain file paths in wav.scp, then the
// max segment end time as a floor-level approximation.
func durations(dataDir string, wavScp map[string]string, segments []kaldi.Segment) map[string]float64 {
	out := make(map[string]float64)
	for reco, text := range readTableOrEmpty(filepath.Join(dataDir, "reco2dur")) {
		if dur, err := strconv.ParseFloat(text, 64); err == nil {
			out[reco] = dur
		}
	}

	for reco, wavPath := range wavScp {
		if _, ok := out[reco]; ok {
			continue
		}
		// Command pipelines ("sox ... |") have no readable header.
		if strings.Contains(wavPath, "|") {
			continue
		}
		path := wavPath
		if !filepath.IsAbs(path) {
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(dataDir, wavPath)
			}
		}
		if dur, err := wavDuration(path); err == nil {
			out[reco] = dur
		}
	}

	maxEnd := make(map[string]float64)
	for _, seg := range segments {
		if seg.End > maxEnd[seg.RecoID] {
			maxEnd[seg.RecoID] = seg.End
		}
	}
	for reco, end := range maxEnd {
		if _, ok := out[reco]; !ok {
			out[reco] = end
		}
	}

	// Keep the mapping aligned with wav.scp.
	for reco := range out {
		if _, ok := wavScp[reco]; !ok {
			delete(out, reco)
		}
	}
	return out
}

// Comparison reports a train/eval split side by side.
type Comparison struct {
	TrainRecordings  int      `json:"train_recordings"`
	EvalRecordings   int      `json:"eval_recordings"`
	TrainSpeakers    int      `json:"train_speakers"`
	EvalSpeakers     int      `json:"eval_speakers"`
	TrainSeconds     float64  `json:"train_seconds"`
	EvalSeconds      float64  `json:"eval_seconds"`
	SharedRecordings []string `json:"shared_recordings,omitempty"`
	SharedSpeakers   []string `json:"shared_speakers,omitempty"`
	SharedUtterances []string `json:"shared_utterances,omitempty"`
}

// SpeakerLeakage reports whether any speaker appears in both splits.
// Shared recordings are expected under a speaker-independent split; shared
// speakers are not.
func (c Comparison) SpeakerLeakage() bool { return len(c.SharedSpeakers) > 0 }

// Compare builds the split comparison for two dataset summaries.
func Compare(train, eval *Dataset) Comparison {
	return Comparison{
		TrainRecordings:  len(train.Recordings),
		EvalRecordings:   len(eval.Recordings),
		TrainSpeakers:    len(train.Speakers),
		EvalSpeakers:     len(eval.Speakers),
		TrainSeconds:     train.TotalSeconds(),
		EvalSeconds:      eval.TotalSeconds(),
		SharedRecordings: intersect(train.Recordings, eval.Recordings),
		SharedSpeakers:   intersect(train.Speakers, eval.Speakers),
		SharedUtterances: intersect(train.Utterances, eval.Utterances),
	}
}

// FormatHours renders seconds as hours with two decimals, e.g. "12.41 h".
func FormatHours(seconds float64) string {
	return fmt.Sprintf("%.2f h", seconds/3600.0)
}

func intersect(a, b map[string]struct{}) []string {
	var shared []string
	for id := range a {
		if _, ok := b[id]; ok {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)
	return shared
}

func readTableOrEmpty(path string) map[string]string {
	table, err := kaldi.ReadTable(path)
	if err != nil {
		return map[string]string{}
	}
	return table
}

func readSpk2UttOrEmpty(path string) map[string][]string {
	spk2utt, err := kaldi.ReadSpk2Utt(path)
	if err != nil {
		return map[string][]string{}
	}
	return spk2utt
}

func readSegmentsOrEmpty(path string) []kaldi.Segment {
	segments, err := kaldi.ReadSegments(path)
	if err != nil {
		return nil
	}
	return segments
}
