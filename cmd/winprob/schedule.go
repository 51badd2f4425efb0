package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

func scheduleCmd(a *app) *cobra.Command {
	var (
		date   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List the games scheduled on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = a.cfg.StartDate(time.Now())
			}
			if _, err := timeutil.ParseDate(date); err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
			}

			schedule, err := buildProvider(a.cfg, a.logger).FetchSchedule(commandContext(cmd), date)
			if err != nil {
				return fmt.Errorf("fetch schedule for %s: %w", date, err)
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(schedule)
			}

			all := schedule.Games()
			if len(all) == 0 {
				fmt.Fprintf(a.out, "no games on %s\n", date)
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GAME\tMATCHUP")
			for _, g := range all {
				fmt.Fprintf(tw, "%d\t%s\n", g.GamePk, g.Label())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date to list (YYYY-MM-DD); defaults to BOOTSTRAP_DATE or today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decoded schedule as JSON")
	return cmd
}
