package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/kaldi"
	"github.com/ed-00/AED-EEND/internal/split"
)

// SplitReport is the validate-split output payload.
type SplitReport struct {
	TrainSpeakers int      `json:"train_speakers"`
	EvalSpeakers  int      `json:"eval_speakers"`
	Shared        []string `json:"shared_speakers,omitempty"`
}

// NewValidateSplitCommand creates the validate-split command.
func NewValidateSplitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-split <train-spk2utt> <eval-spk2utt>",
		Short: "Check a train/eval split for speaker leakage",
		Long: `Check that no speaker appears in both the training and the evaluation
spk2utt files. Any shared speaker is dataset leakage and fails the check.

Example:
  corpusprep validate-split data/icsi_train/spk2utt data/icsi_eval/spk2utt`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateSplit(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runValidateSplit(opts *RootOptions, trainPath, evalPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	train, err := kaldi.Speakers(trainPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read train spk2utt", err)
	}
	eval, err := kaldi.Speakers(evalPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read eval spk2utt", err)
	}

	report := SplitReport{
		TrainSpeakers: len(train),
		EvalSpeakers:  len(eval),
		Shared:        split.Leakage(train, eval),
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(report); err != nil {
			return err
		}
		if len(report.Shared) > 0 {
			return NewExitError(ExitFailure, fmt.Sprintf("found %d overlapping speakers", len(report.Shared)))
		}
		return nil
	}

	w := formatter.Writer
	if len(report.Shared) == 0 {
		fmt.Fprintln(w, "SUCCESS: No speaker overlap found between training and evaluation sets.")
		fmt.Fprintf(w, "  - Training speakers: %d\n", report.TrainSpeakers)
		fmt.Fprintf(w, "  - Evaluation speakers: %d\n", report.EvalSpeakers)
		return nil
	}

	fmt.Fprintf(w, "FAILURE: Found %d overlapping speakers.\n", len(report.Shared))
	for _, spk := range report.Shared {
		fmt.Fprintf(w, "  - %s\n", spk)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("found %d overlapping speakers", len(report.Shared)))
}
