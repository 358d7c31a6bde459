// Package kaldi reads and writes the Kaldi-style data-directory tables the
// corpus recipes exchange: segments, utt2spk, spk2utt, wav.scp and reco2dur.
//
// All readers are line oriented and tolerant of bad records: a line with the
// wrong field count or an unparseable numeric field is dropped and reading
// continues. Only a missing or unreadable file is reported as an error —
// data-quality problems never abort a run.
package kaldi
