package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/kaldi"
	"github.com/ed-00/AED-EEND/internal/split"
)

// NewSpeakerMeetingsCommand creates the speaker-meetings command.
func NewSpeakerMeetingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speaker-meetings <spk2utt> <corpus-xml-dir>",
		Short: "Report how many target speakers appear in more than one meeting",
		Long: `Map every speaker in the corpus annotation directory to the meetings they
participate in, then report how many of the target set's speakers (taken
from a spk2utt file) appear in more than one meeting.

Example:
  corpusprep speaker-meetings data/icsi_train/spk2utt /corpus/icsi/transcripts`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpeakerMeetings(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runSpeakerMeetings(opts *RootOptions, spk2uttPath, corpusDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	target, err := kaldi.Speakers(spk2uttPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read target spk2utt", err)
	}
	meetings, err := split.MeetingsBySpeaker(corpusDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to scan corpus directory", err)
	}
	formatter.VerboseLog("mapped %d speakers across the corpus", len(meetings))

	report := split.Multiplicity(target, meetings)

	if formatter.Format == "json" {
		return formatter.JSON(report)
	}

	w := formatter.Writer
	fmt.Fprintln(w, "--- Speaker Meeting-Multiplicity Analysis ---")
	fmt.Fprintf(w, "Total unique speakers in the target set: %d\n", report.TargetSpeakers)
	fmt.Fprintf(w, "Number of these speakers appearing in >1 meeting: %d\n", report.MultiMeeting)
	fmt.Fprintf(w, "Percentage of speakers with meeting overlap: %.2f%%\n", report.MultiMeetingPct)
	return nil
}
