package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// Outputs holds the destination table paths for a conversion. Files are
// opened in append mode so that converting one annotation file at a time
// accumulates into shared corpus-level tables, the way the recipes run.
type Outputs struct {
	Segments string
	Utt2Spk  string
	RTTM     string
}

// AppendOutputs renders entries into the three output tables.
// An empty path skips that table.
func AppendOutputs(entries []Entry, prec int, out Outputs) error {
	if out.Segments != "" {
		if err := appendWith(out.Segments, func(w io.Writer) error {
			return WriteSegments(w, entries, prec)
		}); err != nil {
			return err
		}
	}
	if out.Utt2Spk != "" {
		if err := appendWith(out.Utt2Spk, func(w io.Writer) error {
			return WriteUtt2Spk(w, entries)
		}); err != nil {
			return err
		}
	}
	if out.RTTM != "" {
		if err := appendWith(out.RTTM, func(w io.Writer) error {
			return WriteRTTM(w, entries, prec)
		}); err != nil {
			return err
		}
	}
	return nil
}

func appendWith(path string, write func(io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Participants returns the distinct participant labels found on segment
// elements anywhere in an annotation file. Used by the split analysis to map
// speakers to the meetings they appear in.
func Participants(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	seen := make(map[string]struct{})
	var out []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "segment" {
			continue
		}
		if p, ok := firstAttr(se, []string{"participant"}); ok && p != "" {
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out, nil
}
