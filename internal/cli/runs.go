package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Run      string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted overlap-analysis runs",
		Long: `List overlap-analysis runs persisted with 'overlap --db', newest first.
With --run, show that run's per-recording breakdown instead.

Example:
  corpusprep runs --db runs.db
  corpusprep runs --db runs.db --run 0190a8b2-...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the run database (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show this run's per-recording breakdown")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run database", err)
	}
	defer st.Close()

	if opts.Run != "" {
		results, err := st.RunRecordings(cmd.Context(), opts.Run)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run recordings", err)
		}
		if formatter.Format == "json" {
			return formatter.JSON(results)
		}
		for _, r := range results {
			fmt.Fprintf(formatter.Writer, "%-24s speech %10.2f s   overlap %10.2f s\n",
				r.RecoID, r.Union, r.Overlap)
		}
		return nil
	}

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	if formatter.Format == "json" {
		return formatter.JSON(runs)
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  min-concurrent=%d  speech=%.2fs  overlap=%.2fs (%.2f%%)  %s\n",
			r.ID, r.CreatedAt, r.MinConcurrent,
			r.Summary.SpeechSeconds, r.Summary.OverlapSeconds, r.Summary.OverlapPercent, r.Source)
	}
	return nil
}
