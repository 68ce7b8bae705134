package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/app"
	applyRange "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
)

func newApplyCmd(opts *options) *cobra.Command {
	var start, end, status string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a date range with a status, as the admin form does",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				resp, err := a.ApplyRange.Execute(cmd.Context(), &applyRange.Request{
					Slug:   opts.calendar,
					Start:  start,
					End:    end,
					Status: status,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "calendar %s: applied %s\n", resp.CalendarSlug, resp.Applied)
				for _, interval := range resp.Availabilities {
					fmt.Fprintf(out, "  %s\n", interval)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Dostępny, Częściowo dostępny or Niedostępny")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
