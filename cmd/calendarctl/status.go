package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/app"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

func newStatusCmd(opts *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of a single day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				day := types.Today(a.Location())
				if date != "" {
					parsed, err := types.ParseDate(date)
					if err != nil {
						return err
					}
					day = parsed
				}

				status, known, err := a.AvailabilityService.StatusForDate(cmd.Context(), opts.calendar, day)
				if err != nil {
					return err
				}

				if !known {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no data\n", day)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", day, status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to check (YYYY-MM-DD, default today)")
	return cmd
}
