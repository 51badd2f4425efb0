package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
	"github.com/preston-bernstein/winprob-viewer/internal/series"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

var errGameRequired = errors.New("either --game or --team is required")

func seriesCmd(a *app) *cobra.Command {
	var (
		gamePk int
		date   string
		team   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the win-probability series for one game",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			provider := buildProvider(a.cfg, a.logger)

			homeName, awayName := "Home", "Away"
			switch {
			case gamePk > 0:
			case team != "":
				if date == "" {
					date = a.cfg.StartDate(time.Now())
				}
				if _, err := timeutil.ParseDate(date); err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
				}
				entry, ok := teams.Find(team)
				if !ok {
					return fmt.Errorf("no team matches %q", team)
				}
				schedule, err := provider.FetchSchedule(ctx, date)
				if err != nil {
					return fmt.Errorf("fetch schedule for %s: %w", date, err)
				}
				g, ok := schedule.GameForTeam(entry.ID)
				if !ok {
					return fmt.Errorf("%s do not play on %s", entry.FullName, date)
				}
				gamePk = g.GamePk
				homeName, awayName = sideNames(g)
			default:
				return errGameRequired
			}

			info, err := provider.FetchGameInfo(ctx, gamePk)
			if err != nil {
				return fmt.Errorf("fetch play log for game %d: %w", gamePk, err)
			}
			points := series.ToSeries(info)

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(points)
			}
			if len(points) == 0 {
				fmt.Fprintf(a.out, "no plays recorded for game %d\n", gamePk)
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "#\tINNING\tSCORE\t%s WIN%%\tDELTA\tPLAY\n", homeName)
			for _, d := range points {
				fmt.Fprintf(tw, "%.0f\t%s\t%s %d-%d %s\t%.1f\t%+.1f\t%s\n",
					d.Index, d.InningLabel(), awayName, d.AwayScore, d.HomeScore, homeName,
					d.HomeWinProb, d.ProbabilityDelta, d.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&gamePk, "game", 0, "gamePk of the game to chart")
	cmd.Flags().StringVar(&date, "date", "", "schedule date used with --team (YYYY-MM-DD)")
	cmd.Flags().StringVar(&team, "team", "", "team name to look up on --date")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the series as JSON")
	cmd.MarkFlagsMutuallyExclusive("game", "team")
	return cmd
}

func sideNames(g games.Game) (home, away string) {
	return teams.ShortName(g.Teams.Home.Team.ID, teams.SideHome), teams.ShortName(g.Teams.Away.Team.ID, teams.SideAway)
}
