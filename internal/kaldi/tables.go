package kaldi

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RawSegment is one unparsed segments-table record:
// <utterance-id> <recording-id> <start-time> <end-time>.
// Time fields are kept as text; consumers decide how strictly to parse them.
type RawSegment struct {
	UttID  string
	RecoID string
	Start  string
	End    string
}

// Segment is a parsed segments-table record with times in seconds.
type Segment struct {
	UttID  string
	RecoID string
	Start  float64
	End    float64
}

// ReadRawSegments reads a segments file, keeping every line with exactly four
// whitespace-separated fields. Lines with any other field count are dropped.
func ReadRawSegments(path string) ([]RawSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segments file: %w", err)
	}
	defer f.Close()

	var out []RawSegment
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 {
			continue
		}
		out = append(out, RawSegment{
			UttID:  fields[0],
			RecoID: fields[1],
			Start:  fields[2],
			End:    fields[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read segments file: %w", err)
	}
	return out, nil
}

// ReadSegments reads a segments file and parses the time fields.
// Records whose times are not valid floats are dropped.
func ReadSegments(path string) ([]Segment, error) {
	raw, err := ReadRawSegments(path)
	if err != nil {
		return nil, err
	}
	out := make([]Segment, 0, len(raw))
	for _, r := range raw {
		start, err := strconv.ParseFloat(r.Start, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseFloat(r.End, 64)
		if err != nil {
			continue
		}
		out = append(out, Segment{UttID: r.UttID, RecoID: r.RecoID, Start: start, End: end})
	}
	return out, nil
}

// ReadTable reads a simple KEY VALUE table (wav.scp, reco2dur, utt2spk).
// The value is everything after the first field, so wav.scp command pipelines
// survive intact. Blank lines and lines starting with '#' are ignored.
func ReadTable(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	table := make(map[string]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			// Retry with any whitespace separator.
			parts = strings.Fields(line)
			if len(parts) < 2 {
				continue
			}
			parts = []string{parts[0], strings.Join(parts[1:], " ")}
		}
		table[parts[0]] = strings.TrimSpace(parts[1])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return table, nil
}

// ReadSpk2Utt reads a spk2utt file: SPEAKER_ID utt1 utt2 ...
// A line holding only a speaker id yields an empty utterance list.
func ReadSpk2Utt(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spk2utt: %w", err)
	}
	defer f.Close()

	spk2utt := make(map[string][]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		spk2utt[fields[0]] = fields[1:]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read spk2utt: %w", err)
	}
	return spk2utt, nil
}

// Speakers reads a spk2utt file and returns just the speaker-id set.
func Speakers(path string) (map[string]struct{}, error) {
	spk2utt, err := ReadSpk2Utt(path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(spk2utt))
	for spk := range spk2utt {
		set[spk] = struct{}{}
	}
	return set, nil
}
