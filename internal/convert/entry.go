package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is one converted speech segment, ready to be rendered into the
// output tables.
type Entry struct {
	UttID   string
	RecoID  string
	Speaker string // utt2spk speaker key (meeting-qualified for AMI)
	RTTMSpk string // recording-local speaker label for the RTTM line
	Start   float64
	End     float64
}

// CleanSpeakerID normalizes a raw speaker label to NFC and strips every rune
// that is not an ASCII letter, digit or underscore. Annotation files carry
// stray punctuation and the occasional decomposed accent; utterance ids must
// stay plain.
func CleanSpeakerID(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_',
			r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteSegments renders segments lines: <utt> <reco> <start> <end>.
// prec is the number of decimal places for the time fields (AMI tables use
// 2, ICSI 3).
func WriteSegments(w io.Writer, entries []Entry, prec int) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s %.*f %.*f\n",
			e.UttID, e.RecoID, prec, e.Start, prec, e.End); err != nil {
			return fmt.Errorf("write segments: %w", err)
		}
	}
	return nil
}

// WriteUtt2Spk renders utt2spk lines: <utt> <speaker>.
func WriteUtt2Spk(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.UttID, e.Speaker); err != nil {
			return fmt.Errorf("write utt2spk: %w", err)
		}
	}
	return nil
}

// WriteRTTM renders NIST RTTM speaker lines:
// SPEAKER <reco> 1 <start> <duration> <NA> <NA> <speaker> <NA> <NA>.
func WriteRTTM(w io.Writer, entries []Entry, prec int) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "SPEAKER %s 1 %.*f %.*f <NA> <NA> %s <NA> <NA>\n",
			e.RecoID, prec, e.Start, prec, e.End-e.Start, e.RTTMSpk); err != nil {
			return fmt.Errorf("write rttm: %w", err)
		}
	}
	return nil
}
