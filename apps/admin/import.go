package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/user"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

func newImportCmd() *cobra.Command {
	var file, out string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Check a users workbook by importing it into the users registry",
		Long: `Imports the first sheet of the workbook (Name | Email | Phone | Role | Password)
and prints the created ids and the rejected rows as JSON.
With --out, the resulting users registry is written back as a workbook.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainerFunc(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return errors.Wrap(err, "opening import file")
			}
			defer f.Close()

			res, err := c.Importer.Import(f)
			if err != nil {
				if fldErrs, ok := core.FieldErrors(err, c.Translator); ok {
					return errors.Errorf("%s: %s", file, fldErrs["file"])
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(res); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			w, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "creating output file")
			}
			if err = spreadsheet.Write(w, spreadsheet.UserSheet(c.UserSvc.List(user.QueryFilter{}))); err != nil {
				_ = w.Close()
				return err
			}
			return errors.Wrap(w.Close(), "closing output file")
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "xlsx workbook to import")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the resulting users to this workbook")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
