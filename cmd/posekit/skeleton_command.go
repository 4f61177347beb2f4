package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posekit/internal/config"
	"posekit/internal/skeleton"
)

func newSkeletonCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string
	var checkK int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "skeleton",
		Short: "Inspect and validate the connectivity model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := cfg.Paths.SkeletonPath
			if pathFlag != "" {
				if path, err = config.ExpandPath(pathFlag); err != nil {
					return err
				}
			}

			model, err := skeleton.Load(path)
			if err != nil {
				return err
			}

			if checkK > 0 {
				if err := model.CheckKeypoints(checkK); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"keypoints":    model.Keypoints(),
					"joint_names":  model.JointNames(),
					"links":        model.Links(),
					"angles":       model.Angles(),
					"joint_colors": model.JointColors(),
					"link_colors":  model.LinkColors(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Skeleton: %d joints, %d links, %d angles\n",
				model.Keypoints(), len(model.Links()), len(model.Angles()))

			names := model.JointNames()
			colors := model.JointColors()
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{fmt.Sprintf("%d", i), name, colors[i]}
			}
			fmt.Fprintln(out, renderTable([]string{"Index", "Joint", "Color"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft}))

			linkRows := make([][]string, 0, len(model.Links()))
			linkColors := model.LinkColors()
			for i, link := range model.Links() {
				linkRows = append(linkRows, []string{
					fmt.Sprintf("%s - %s", names[link.A], names[link.B]),
					linkColors[i],
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Link", "Color"}, linkRows,
				[]columnAlignment{alignLeft, alignLeft}))

			if checkK > 0 {
				fmt.Fprintf(out, "Keypoint dimension %d matches the skeleton\n", checkK)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Skeleton description path (overrides the configured one)")
	cmd.Flags().IntVar(&checkK, "check-k", 0, "Validate this keypoint dimension against the skeleton")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}
