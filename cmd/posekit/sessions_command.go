package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	var tablePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recording sessions from the metadata table",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.loadRegistry(tablePath)
			if err != nil {
				return err
			}

			if asJSON {
				type sessionRow struct {
					ID    uint32            `json:"id"`
					Path  string            `json:"path"`
					Attrs map[string]string `json:"attributes"`
				}
				out := make([]sessionRow, 0, reg.Len())
				for _, rec := range reg.Records() {
					attrs, err := reg.Lookup(rec.ID)
					if err != nil {
						return err
					}
					m := make(map[string]string, len(attrs.Columns()))
					for i, col := range attrs.Columns() {
						m[col] = attrs.Values()[i]
					}
					out = append(out, sessionRow{ID: rec.ID, Path: rec.Path, Attrs: m})
				}
				return writeJSON(cmd, out)
			}

			headers := append([]string{"ID", "Path"}, reg.Columns()...)
			rows := make([][]string, 0, reg.Len())
			for _, rec := range reg.Records() {
				row := append([]string{fmt.Sprintf("%d", rec.ID), rec.Path}, rec.Values...)
				rows = append(rows, row)
			}
			aligns := make([]columnAlignment, len(headers))
			aligns[0] = alignRight

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			fmt.Fprintf(cmd.OutOrStdout(), "%s sessions\n", formatCount(reg.Len()))
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Metadata table path (overrides the configured one)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}
