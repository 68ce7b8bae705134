package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/app"
	pruneHistory "github.com/m04kA/SMC-CalendarService/internal/usecase/prune_history"
)

func newPruneCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove intervals that ended before the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				var (
					results []*pruneHistory.Result
					err     error
				)
				if all {
					results, err = a.PruneHistory.ExecuteAll(cmd.Context())
				} else {
					var res *pruneHistory.Result
					res, err = a.PruneHistory.Execute(cmd.Context(), opts.calendar)
					if res != nil {
						results = append(results, res)
					}
				}

				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "calendar %s: removed %d, kept %d (cutoff %s)\n",
						r.CalendarSlug, r.Removed, r.Kept, r.Cutoff)
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Prune every calendar")
	return cmd
}
