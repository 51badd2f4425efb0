package testutil

import (
	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
)

// SampleGame returns a game between two table teams, falling back to side labels for unknown ids.
func SampleGame(gamePk, awayID, homeID int) games.Game {
	return games.Game{
		GamePk:   gamePk,
		GameGUID: "guid-" + teams.ShortName(awayID, teams.SideAway) + "-" + teams.ShortName(homeID, teams.SideHome),
		Teams: games.Matchup{
			Away: games.TeamSide{Team: teams.Team{ID: awayID, Name: fullName(awayID, teams.SideAway)}, SeriesNumber: 1},
			Home: games.TeamSide{Team: teams.Team{ID: homeID, Name: fullName(homeID, teams.SideHome)}, SeriesNumber: 1},
		},
	}
}

// SampleSchedule wraps the games in a single game day for date.
func SampleSchedule(date string, g ...games.Game) games.Schedule {
	return games.Schedule{
		TotalItems: len(g),
		Dates:      []games.GameDay{{Date: date, TotalItems: len(g), Games: g}},
	}
}

// SampleGameInfo builds n plays where the home side gains one point of probability per play.
func SampleGameInfo(n int) plays.GameInfo {
	info := make(plays.GameInfo, n)
	for i := range info {
		home := 50 + float64(i)
		info[i] = plays.Play{
			Result: plays.Result{
				PlayType:    "atBat",
				Event:       "Single",
				EventType:   "single",
				Description: "Batter singles on a line drive.",
			},
			HomeTeamWinProbability:      home,
			AwayTeamWinProbability:      100 - home,
			HomeTeamWinProbabilityAdded: 1,
			AboutInning:                 i/6 + 1,
			AboutHalfInning:             halfInning(i),
		}
	}
	return info
}

func halfInning(i int) string {
	if (i/3)%2 == 0 {
		return "top"
	}
	return "bottom"
}

func fullName(id int, side teams.Side) string {
	if e, ok := teams.Lookup(id); ok {
		return e.FullName
	}
	return side.Fallback()
}
