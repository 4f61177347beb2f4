package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posekit/internal/catalog"
	"posekit/internal/config"
	"posekit/internal/frameindex"
	"posekit/internal/merge"
	"posekit/internal/pose"
	"posekit/internal/poseio"
	"posekit/internal/skeleton"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var tablePath string
	var formatFlag string
	var outPath string
	var checkSkeleton bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge all session pose files into one aligned dataset",
		Long: "Builds the session registry from the metadata table, loads every session's " +
			"pose tensor, concatenates them in table order, and broadcasts session " +
			"attributes onto the merged frames.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			reg, err := ctx.loadRegistry(tablePath)
			if err != nil {
				return err
			}

			format := poseio.Format(cfg.Merge.Format)
			if formatFlag != "" {
				format = poseio.Format(formatFlag)
			}
			if _, err := poseio.Lookup(format); err != nil {
				return err
			}

			entries := merge.EntriesFromRegistry(reg, format)
			for i := range entries {
				entries[i].Path = cfg.ResolveDataPath(entries[i].Path)
			}

			merger := merge.New(merge.Options{Workers: cfg.Merge.Workers, Logger: logger})
			dataset, err := merger.Merge(cmd.Context(), entries)
			if err != nil {
				return err
			}

			meta, err := frameindex.Expand(dataset.IDs, reg)
			if err != nil {
				return err
			}

			if checkSkeleton {
				model, err := skeleton.Load(cfg.Paths.SkeletonPath)
				if err != nil {
					return err
				}
				if err := model.CheckKeypoints(dataset.Pose.Keypoints); err != nil {
					return err
				}
			}

			var run *catalog.Run
			if cfg.Catalog.Enabled {
				run, err = recordRun(cmd, cfg, dataset, entries)
				if err != nil {
					// Catalog trouble should not discard a finished merge.
					logger.Warn("failed to record merge run", "error", err)
				}
			}

			if outPath != "" {
				target, err := config.ExpandPath(outPath)
				if err != nil {
					return err
				}
				if err := poseio.WriteNPY(target, dataset.Pose); err != nil {
					return err
				}
				if !asJSON {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote merged tensor to %s\n", target)
				}
			}

			return printMergeResult(cmd, dataset, meta, run, asJSON)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Metadata table path (overrides the configured one)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Pose file format tag (overrides merge.format)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the merged tensor to this NPY file")
	cmd.Flags().BoolVar(&checkSkeleton, "check-skeleton", false, "Validate the merged keypoint dimension against the skeleton")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func recordRun(cmd *cobra.Command, cfg *config.Config, dataset *pose.Dataset, entries []merge.Entry) (*catalog.Run, error) {
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.RecordRun(cmd.Context(), dataset, entries)
}

func printMergeResult(cmd *cobra.Command, dataset *pose.Dataset, meta *frameindex.Table, run *catalog.Run, asJSON bool) error {
	blocks := merge.Blocks(dataset.IDs)

	if asJSON {
		payload := map[string]any{
			"frames":           dataset.Pose.Frames,
			"keypoints":        dataset.Pose.Keypoints,
			"coords":           pose.Coords,
			"sessions":         len(blocks),
			"blocks":           blocks,
			"metadata_columns": meta.Columns(),
		}
		if run != nil {
			payload["run_id"] = run.ID
		}
		return writeJSON(cmd, payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Merged %s frames x %d keypoints x %d coords from %d sessions\n",
		formatCount(dataset.Pose.Frames), dataset.Pose.Keypoints, pose.Coords, len(blocks))

	headers := []string{"Session", "Frames"}
	rows := make([][]string, 0, len(blocks))
	for _, block := range blocks {
		rows = append(rows, []string{fmt.Sprintf("%d", block.ID), formatCount(block.Frames)})
	}
	fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignRight}))

	fmt.Fprintf(out, "Per-frame metadata: %s rows, columns %v\n", formatCount(meta.Len()), meta.Columns())
	if run != nil {
		fmt.Fprintf(out, "Recorded catalog run %s\n", run.ID)
	}
	return nil
}
