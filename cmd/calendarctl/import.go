package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/app"
	importRecords "github.com/m04kA/SMC-CalendarService/internal/usecase/import_records"
)

func newImportCmd(opts *options) *cobra.Command {
	var (
		file    string
		format  string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replay legacy availability records (JSON or YAML) into a calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importRecords.ParseFormat(format)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			records, err := importRecords.ParseRecords(data, f)
			if err != nil {
				return err
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				resp, err := a.ImportRecords.Execute(cmd.Context(), &importRecords.Request{
					Slug:    opts.calendar,
					Records: records,
					Replace: replace,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "calendar %s: applied %d, skipped %d, intervals %d\n",
					resp.CalendarSlug, resp.Applied, len(resp.Skipped), len(resp.Availabilities))
				for _, d := range resp.Skipped {
					fmt.Fprintf(out, "  skipped %s\n", d)
				}
				for _, d := range resp.Diagnostics {
					fmt.Fprintf(out, "  stored record anomaly %s\n", d)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "File with records")
	cmd.Flags().StringVar(&format, "format", "auto", "File format: auto, json or yaml")
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop the current set before importing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
