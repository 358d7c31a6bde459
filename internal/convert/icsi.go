package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
)

// ICSISegmentsPrecision is the decimal precision of ICSI time fields.
const ICSISegmentsPrecision = 3

// ErrNoTranscript is returned when an ICSI file has no Trans element; the
// file is not a transcription and yields nothing.
var ErrNoTranscript = errors.New("no Trans element found")

// ParseICSI extracts speech segments from one ICSI (Transcriber-style)
// annotation file. Turns live under a Trans element and carry startTime,
// endTime and speaker attributes; turns missing any of the three, or with an
// invalid time span, are skipped.
func ParseICSI(r io.Reader, recordingID string) ([]Entry, error) {
	dec := xml.NewDecoder(r)

	sawTrans := false
	transDepth := 0
	var entries []Entry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse ICSI xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Trans" {
				sawTrans = true
				transDepth++
				continue
			}
			if transDepth == 0 || t.Name.Local != "Turn" {
				continue
			}

			startText, okStart := firstAttr(t, []string{"startTime"})
			endText, okEnd := firstAttr(t, []string{"endTime"})
			speaker, okSpk := firstAttr(t, []string{"speaker"})
			if !okStart || !okEnd || !okSpk || speaker == "" {
				continue
			}
			start, end, ok := parseSpan(startText, endText)
			if !ok {
				continue
			}

			uttID := fmt.Sprintf("%s-%s-%09d-%09d", recordingID, speaker, millis(start), millis(end))
			entries = append(entries, Entry{
				UttID:   uttID,
				RecoID:  recordingID,
				Speaker: speaker,
				RTTMSpk: speaker,
				Start:   start,
				End:     end,
			})
		case xml.EndElement:
			if t.Name.Local == "Trans" && transDepth > 0 {
				transDepth--
			}
		}
	}

	if !sawTrans {
		return nil, ErrNoTranscript
	}
	return entries, nil
}

func millis(sec float64) int { return int(math.Round(sec * 1000)) }
