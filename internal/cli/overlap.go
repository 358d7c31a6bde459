package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ed-00/AED-EEND/internal/kaldi"
	"github.com/ed-00/AED-EEND/internal/overlap"
	"github.com/ed-00/AED-EEND/internal/store"
)

// OverlapOptions holds flags for the overlap command.
type OverlapOptions struct {
	*RootOptions
	MinConcurrent int
	Workers       int
	Database      string
	PerRecording  bool
}

// OverlapReport is the overlap command's output payload.
type OverlapReport struct {
	Source        string                    `json:"source"`
	MinConcurrent int                       `json:"min_concurrent"`
	Dropped       int                       `json:"dropped_records"`
	Summary       overlap.Summary           `json:"summary"`
	PerRecording  []overlap.RecordingResult `json:"per_recording,omitempty"`
	RunID         string                    `json:"run_id,omitempty"`
}

// NewOverlapCommand creates the overlap command.
func NewOverlapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OverlapOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "overlap <segments-file>",
		Short: "Compute speech and overlap durations from a segments table",
		Long: `Compute total speech time and overlapped-speech time from a Kaldi-style
segments table (utt-id reco-id start end, whitespace separated, seconds).

Malformed records are skipped; a table with no valid records yields a zero
report and still exits successfully. Only a missing or unreadable table is
an error.

Example:
  corpusprep overlap data/icsi_train/segments
  corpusprep overlap data/segments --min-concurrent 3 --per-recording
  corpusprep overlap data/segments --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlap(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MinConcurrent, "min-concurrent", 0,
		"interval multiplicity that counts as overlap (default from config, normally 2)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0,
		"parallel sweep workers (default from config, normally 1)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")
	cmd.Flags().BoolVar(&opts.PerRecording, "per-recording", false, "include the per-recording breakdown")

	return cmd
}

func runOverlap(opts *OverlapOptions, segmentsPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if !cmd.Flags().Changed("min-concurrent") || opts.MinConcurrent < 1 {
		opts.MinConcurrent = cfg.Overlap.MinConcurrent
	}
	if !cmd.Flags().Changed("workers") || opts.Workers < 1 {
		opts.Workers = cfg.Overlap.Workers
	}
	if !cmd.Flags().Changed("db") && opts.Database == "" {
		opts.Database = cfg.Overlap.Database
	}

	raw, err := kaldi.ReadRawSegments(segmentsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read segments table", err)
	}

	groups, dropped := overlap.Ingest(raw)
	formatter.VerboseLog("ingested %d intervals across %d recordings (%d records dropped)",
		groups.Intervals(), len(groups), dropped)

	summary, results := overlap.Analyze(groups, opts.MinConcurrent, opts.Workers)

	report := OverlapReport{
		Source:        segmentsPath,
		MinConcurrent: opts.MinConcurrent,
		Dropped:       dropped,
		Summary:       summary,
	}
	if opts.PerRecording {
		report.PerRecording = results
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run database", err)
		}
		defer st.Close()
		runID, err := st.SaveRun(cmd.Context(), segmentsPath, opts.MinConcurrent, summary, results)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		report.RunID = runID
		slog.Debug("run persisted", "id", runID, "db", opts.Database)
	}

	if formatter.Format == "json" {
		return formatter.JSON(report)
	}
	renderOverlapReport(formatter, report)
	return nil
}

func renderOverlapReport(f *OutputFormatter, r OverlapReport) {
	w := f.Writer
	fmt.Fprintln(w, "--- Speech Overlap Analysis ---")
	fmt.Fprintf(w, "Segments table:     %s\n", r.Source)
	fmt.Fprintf(w, "Recordings:         %d\n", r.Summary.Recordings)
	fmt.Fprintf(w, "Dropped records:    %d\n", r.Dropped)
	fmt.Fprintf(w, "Total speech:       %.2f s (%.2f h)\n",
		r.Summary.SpeechSeconds, r.Summary.SpeechSeconds/3600)
	fmt.Fprintf(w, "Overlapped speech:  %.2f s (%.2f h)\n",
		r.Summary.OverlapSeconds, r.Summary.OverlapSeconds/3600)
	fmt.Fprintf(w, "Overlap percentage: %.2f%%\n", r.Summary.OverlapPercent)
	if r.RunID != "" {
		fmt.Fprintf(w, "Run id:             %s\n", r.RunID)
	}
	if len(r.PerRecording) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Per-recording breakdown:")
		for _, rec := range r.PerRecording {
			fmt.Fprintf(w, "  %-24s speech %10.2f s   overlap %10.2f s\n",
				rec.RecoID, rec.Union, rec.Overlap)
		}
	}
}
