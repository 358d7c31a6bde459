// Package split checks dataset splits for speaker leakage.
//
// Two analyses come from the corpus recipes: the train/eval speaker-set
// intersection (any shared speaker is leakage), and the meeting-multiplicity
// report, which measures how many of a target set's speakers appear in more
// than one meeting of the full corpus.
package split

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ed-00/AED-EEND/internal/convert"
)

// Leakage returns the sorted intersection of two speaker-id sets.
// An empty result means the split is speaker-independent.
func Leakage(train, eval map[string]struct{}) []string {
	var shared []string
	for spk := range train {
		if _, ok := eval[spk]; ok {
			shared = append(shared, spk)
		}
	}
	sort.Strings(shared)
	return shared
}

// MeetingsBySpeaker scans a corpus annotation directory and maps every
// speaker to the meetings they participate in. The meeting id is the XML
// filename without extension. Files that fail to parse are skipped with a
// warning; a missing directory is an error.
func MeetingsBySpeaker(corpusDir string) (map[string][]string, error) {
	dirEntries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	meetings := make(map[string][]string)
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".xml") {
			continue
		}
		meetingID := strings.TrimSuffix(name, ".xml")

		f, err := os.Open(filepath.Join(corpusDir, name))
		if err != nil {
			slog.Warn("skipping unreadable annotation file", "file", name, "error", err)
			continue
		}
		participants, err := convert.Participants(f)
		f.Close()
		if err != nil {
			slog.Warn("skipping unparseable annotation file", "file", name, "error", err)
			continue
		}
		for _, spk := range participants {
			meetings[spk] = append(meetings[spk], meetingID)
		}
	}
	return meetings, nil
}

// MultiplicityReport summarizes how many target speakers appear in more than
// one meeting.
type MultiplicityReport struct {
	TargetSpeakers  int      `json:"target_speakers"`
	MultiMeeting    int      `json:"multi_meeting_speakers"`
	MultiMeetingPct float64  `json:"multi_meeting_percentage"`
	Speakers        []string `json:"speakers,omitempty"` // the multi-meeting speakers, sorted
}

// Multiplicity computes the meeting-multiplicity report for a target speaker
// set against the full speaker-to-meetings map.
func Multiplicity(target map[string]struct{}, meetings map[string][]string) MultiplicityReport {
	rep := MultiplicityReport{TargetSpeakers: len(target)}
	for spk := range target {
		if len(meetings[spk]) > 1 {
			rep.MultiMeeting++
			rep.Speakers = append(rep.Speakers, spk)
		}
	}
	sort.Strings(rep.Speakers)
	if rep.TargetSpeakers > 0 {
		rep.MultiMeetingPct = 100 * float64(rep.MultiMeeting) / float64(rep.TargetSpeakers)
	}
	return rep
}
