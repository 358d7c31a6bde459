// Package convert turns meeting-corpus annotation XML into Kaldi-style
// tables. Two dialects are supported:
//
//   - AMI: one XML file per meeting/speaker channel; segment-like elements
//     carry start/end times under several attribute spellings. The speaker
//     comes from the filename, not the XML, so callers pass it in.
//   - ICSI: Transcriber-style files with a Trans element holding Turn
//     elements attributed startTime/endTime/speaker.
//
// Both converters share the skip rules of the corpus recipes: segments with
// missing, unparseable or non-positive time spans are dropped without
// failing the conversion. Output is a slice of Entry values that the writers
// render as segments, utt2spk and RTTM lines.
package convert
