package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/stats"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	TrainDir        string
	EvalDir         string
	NoFailOnOverlap bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize and compare train/eval data directories",
		Long: `Summarize two Kaldi-style data directories side by side: recording and
speaker counts, total audio duration, and id overlap across the split.

Shared recordings are expected under a speaker-independent split; shared
speakers are dataset leakage and fail the command unless
--no-fail-on-overlap is given.

Example:
  corpusprep stats --train-dir data/ami_train --eval-dir data/ami_eval`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TrainDir, "train-dir", "", "training data dir (default from config)")
	cmd.Flags().StringVar(&opts.EvalDir, "eval-dir", "", "evaluation data dir (default from config)")
	cmd.Flags().BoolVar(&opts.NoFailOnOverlap, "no-fail-on-overlap", false,
		"warn about speaker overlap instead of failing")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.TrainDir == "" {
		opts.TrainDir = cfg.Stats.TrainDir
	}
	if opts.EvalDir == "" {
		opts.EvalDir = cfg.Stats.EvalDir
	}

	train, err := stats.Load(opts.TrainDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load train dir", err)
	}
	eval, err := stats.Load(opts.EvalDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load eval dir", err)
	}

	comparison := stats.Compare(train, eval)

	if formatter.Format == "json" {
		if err := formatter.JSON(comparison); err != nil {
			return err
		}
	} else {
		renderComparison(formatter, comparison)
	}

	if comparison.SpeakerLeakage() && !opts.NoFailOnOverlap {
		return NewExitError(ExitFailure,
			fmt.Sprintf("found %d overlapping speakers between train and eval", len(comparison.SharedSpeakers)))
	}
	return nil
}

func renderComparison(f *OutputFormatter, c stats.Comparison) {
	w := f.Writer
	fmt.Fprintln(w, "Dataset statistics:")
	fmt.Fprintf(w, "- Train recordings: %d\n", c.TrainRecordings)
	fmt.Fprintf(w, "- Eval recordings:  %d\n", c.EvalRecordings)
	fmt.Fprintf(w, "- Train speakers:   %d\n", c.TrainSpeakers)
	fmt.Fprintf(w, "- Eval speakers:    %d\n", c.EvalSpeakers)
	fmt.Fprintf(w, "- Train duration:   %s\n", stats.FormatHours(c.TrainSeconds))
	fmt.Fprintf(w, "- Eval duration:    %s\n", stats.FormatHours(c.EvalSeconds))

	if n := len(c.SharedRecordings); n > 0 {
		fmt.Fprintf(w, "NOTE: %d recording ids appear in both train and eval (expected under speaker-independent split).\n", n)
	} else {
		fmt.Fprintln(w, "- No overlapping recordings between train and eval.")
	}

	if n := len(c.SharedSpeakers); n > 0 {
		fmt.Fprintf(w, "WARNING: %d overlapping speaker ids between train and eval.\n", n)
		for i, spk := range c.SharedSpeakers {
			if i == 10 {
				fmt.Fprintf(w, "    ... and %d more\n", n-10)
				break
			}
			fmt.Fprintf(w, "    %s\n", spk)
		}
	} else {
		fmt.Fprintln(w, "- No overlapping speakers between train and eval.")
	}

	if n := len(c.SharedUtterances); n > 0 {
		fmt.Fprintf(w, "WARNING: %d overlapping utterance ids between train and eval.\n", n)
	} else {
		fmt.Fprintln(w, "- No overlapping utterance ids between train and eval.")
	}
}
