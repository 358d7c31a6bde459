package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/convert"
)

// ConvertOptions holds flags shared by the convert subcommands.
type ConvertOptions struct {
	*RootOptions
	Segments string
	Utt2Spk  string
	RTTM     string
}

// NewConvertCommand creates the convert command group.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert annotation XML to Kaldi-style tables",
		Long: `Convert meeting-corpus annotation XML into segments, utt2spk and RTTM
tables. Output files are appended to, so converting one annotation file at a
time accumulates into shared corpus-level tables.`,
	}

	cmd.PersistentFlags().StringVar(&opts.Segments, "segments", "", "segments output path (append)")
	cmd.PersistentFlags().StringVar(&opts.Utt2Spk, "utt2spk", "", "utt2spk output path (append)")
	cmd.PersistentFlags().StringVar(&opts.RTTM, "rttm", "", "RTTM output path (append)")

	cmd.AddCommand(newConvertAMICommand(opts))
	cmd.AddCommand(newConvertICSICommand(opts))
	return cmd
}

func newConvertAMICommand(opts *ConvertOptions) *cobra.Command {
	var meeting, speaker string

	cmd := &cobra.Command{
		Use:   "ami <xml-file>",
		Short: "Convert one AMI annotation file",
		Long: `Convert one AMI annotation file. AMI stores one file per meeting and
speaker channel; the meeting id and the channel's speaker id come from the
filename, so both must be passed explicitly.

Example:
  corpusprep convert ami EN2001a.A.segments.xml --meeting EN2001a --speaker A \
    --segments data/segments --utt2spk data/utt2spk --rttm data/rttm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd, args[0], convert.AMISegmentsPrecision,
				func(f *os.File) ([]convert.Entry, error) {
					return convert.ParseAMI(f, meeting, speaker)
				})
		},
	}

	cmd.Flags().StringVar(&meeting, "meeting", "", "meeting id (e.g. EN2001a)")
	cmd.Flags().StringVar(&speaker, "speaker", "", "speaker channel id (e.g. A)")
	_ = cmd.MarkFlagRequired("meeting")
	_ = cmd.MarkFlagRequired("speaker")
	return cmd
}

func newConvertICSICommand(opts *ConvertOptions) *cobra.Command {
	var recording string

	cmd := &cobra.Command{
		Use:   "icsi <xml-file>",
		Short: "Convert one ICSI annotation file",
		Long: `Convert one ICSI (Transcriber-style) annotation file. Speaker ids come
from the Turn elements themselves; only the recording id is external.

Example:
  corpusprep convert icsi Bmr021.xml --recording Bmr021 \
    --segments data/segments --utt2spk data/utt2spk --rttm data/rttm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd, args[0], convert.ICSISegmentsPrecision,
				func(f *os.File) ([]convert.Entry, error) {
					return convert.ParseICSI(f, recording)
				})
		},
	}

	cmd.Flags().StringVar(&recording, "recording", "", "recording id (e.g. Bmr021)")
	_ = cmd.MarkFlagRequired("recording")
	return cmd
}

func runConvert(opts *ConvertOptions, cmd *cobra.Command, xmlPath string, prec int,
	parse func(*os.File) ([]convert.Entry, error)) error {

	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	f, err := os.Open(xmlPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open annotation file", err)
	}
	entries, err := parse(f)
	f.Close()
	if err != nil {
		if errors.Is(err, convert.ErrNoTranscript) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s is not a transcription file", xmlPath), err)
		}
		return WrapExitError(ExitCommandError, "failed to parse annotation file", err)
	}
	formatter.VerboseLog("parsed %d segments from %s", len(entries), xmlPath)

	out := convert.Outputs{Segments: opts.Segments, Utt2Spk: opts.Utt2Spk, RTTM: opts.RTTM}
	if out.Segments == "" && out.Utt2Spk == "" && out.RTTM == "" {
		// No destinations: print segments lines, the most common use.
		if err := convert.WriteSegments(cmd.OutOrStdout(), entries, prec); err != nil {
			return WrapExitError(ExitCommandError, "failed to write segments", err)
		}
		return nil
	}
	if err := convert.AppendOutputs(entries, prec, out); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output tables", err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]interface{}{
			"source":   xmlPath,
			"segments": len(entries),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "converted %d segments from %s\n", len(entries), xmlPath)
	return nil
}
