package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/langcenter/services/spreadsheet"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every registry to an xlsx workbook, one sheet per entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainerFunc(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sheets := c.Sheets()

			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "creating export file")
			}
			if err = spreadsheet.Write(f, sheets...); err != nil {
				_ = f.Close()
				return err
			}
			if err = f.Close(); err != nil {
				return errors.Wrap(err, "closing export file")
			}

			for _, sh := range sheets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", sh.Name, len(sh.Rows))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "langcenter.xlsx", "path of the workbook to write")
	return cmd
}
