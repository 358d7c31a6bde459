package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// AMISegmentsPrecision is the decimal precision of AMI time fields.
const AMISegmentsPrecision = 2

// Attribute spellings seen across AMI annotation generations.
var (
	amiStartAttrs = []string{"starttime", "start", "startTime", "start_time", "transcriber_start"}
	amiEndAttrs   = []string{"endtime", "end", "endTime", "end_time", "transcriber_end"}
)

// ParseAMI extracts speech segments from one AMI annotation file.
//
// The scan is namespace-agnostic and accepts segment, seg or turn elements
// (element names compared case-insensitively, attribute names exactly).
// AMI stores the speaker channel in the filename, so the caller supplies
// speakerID; the emitted speaker key is meeting-qualified because the A/B/C/D
// channel letters repeat across meetings.
func ParseAMI(r io.Reader, meetingID, speakerID string) ([]Entry, error) {
	spk := CleanSpeakerID(speakerID)
	spkKey := meetingID + "_" + spk

	dec := xml.NewDecoder(r)
	var entries []Entry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse AMI xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "segment", "seg", "turn":
		default:
			continue
		}

		startText, ok := firstAttr(se, amiStartAttrs)
		if !ok {
			continue
		}
		endText, ok := firstAttr(se, amiEndAttrs)
		if !ok {
			continue
		}
		start, end, ok := parseSpan(startText, endText)
		if !ok {
			continue
		}

		// Utterance id starts with the speaker key: Kaldi sorts utt2spk by
		// utterance id and expects the speaker as prefix.
		uttID := fmt.Sprintf("%s-%08d-%08d", spkKey, centis(start), centis(end))
		entries = append(entries, Entry{
			UttID:   uttID,
			RecoID:  meetingID,
			Speaker: spkKey,
			RTTMSpk: spk,
			Start:   start,
			End:     end,
		})
	}
	return entries, nil
}

// firstAttr returns the value of the first attribute in names present on the
// element.
func firstAttr(se xml.StartElement, names []string) (string, bool) {
	for _, name := range names {
		for _, attr := range se.Attr {
			if attr.Name.Local == name {
				return attr.Value, true
			}
		}
	}
	return "", false
}

// parseSpan parses a start/end pair, rejecting non-numeric values and
// non-positive durations.
func parseSpan(startText, endText string) (start, end float64, ok bool) {
	start, err := strconv.ParseFloat(strings.TrimSpace(startText), 64)
	if err != nil {
		return 0, 0, false
	}
	end, err = strconv.ParseFloat(strings.TrimSpace(endText), 64)
	if err != nil {
		return 0, 0, false
	}
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// centis converts seconds to whole centiseconds. Rounding (not truncation)
// keeps ids stable when the product lands just under an integer.
func centis(sec float64) int { return int(math.Round(sec * 100)) }
