package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"posekit/internal/catalog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var showID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded merge runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Catalog.Enabled {
				return fmt.Errorf("the merge-run catalog is disabled (set catalog.enabled = true)")
			}

			store, err := catalog.Open(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if showID != "" {
				run, err := store.GetRun(cmd.Context(), showID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, run)
				}
				return printRunDetail(cmd, run)
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}

			headers := []string{"Run", "Recorded", "Frames", "Keypoints", "Sessions"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.CreatedAt.Local().Format(time.DateTime),
					formatCount(run.Frames),
					fmt.Sprintf("%d", run.Keypoints),
					fmt.Sprintf("%d", run.SessionCount),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&showID, "id", "", "Show one run with its per-session detail")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printRunDetail(cmd *cobra.Command, run *catalog.Run) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s recorded %s\n", run.ID, run.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Shape: %s frames x %d keypoints x 3 coords\n", formatCount(run.Frames), run.Keypoints)

	headers := []string{"Pos", "Session", "Path", "Format", "Frames"}
	rows := make([][]string, 0, len(run.Sessions))
	for _, rs := range run.Sessions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", rs.Position),
			fmt.Sprintf("%d", rs.SessionID),
			rs.SourcePath,
			rs.Format,
			formatCount(rs.Frames),
		})
	}
	fmt.Fprintln(out, renderTable(headers, rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight}))
	return nil
}
