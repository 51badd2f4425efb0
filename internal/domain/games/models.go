package games

import (
	"fmt"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
)

// TeamSide is one side (home or away) of a scheduled game.
type TeamSide struct {
	Team         teams.Team `json:"team"`
	SeriesNumber int        `json:"seriesNumber"`
}

// Matchup holds both sides of a game.
type Matchup struct {
	Home TeamSide `json:"home"`
	Away TeamSide `json:"away"`
}

// Game is one scheduled matchup, identified by GamePk for detail lookups.
type Game struct {
	GamePk   int     `json:"gamePk"`
	GameGUID string  `json:"gameGuid"`
	Teams    Matchup `json:"teams"`
}

// Label renders the selection text "{away} at {home}".
func (g Game) Label() string {
	return fmt.Sprintf("%s at %s", g.Teams.Away.Team.Name, g.Teams.Home.Team.Name)
}

// GameDay is one calendar day's schedule.
type GameDay struct {
	Date       string `json:"date"`
	TotalItems int    `json:"totalItems"`
	Games      []Game `json:"games"`
}

// Schedule is the root of a schedule lookup.
// TotalItems is informational; it is never checked against the decoded games.
type Schedule struct {
	TotalItems int       `json:"totalItems"`
	Dates      []GameDay `json:"dates"`
}

// Games flattens every game day in order.
func (s Schedule) Games() []Game {
	var out []Game
	for _, day := range s.Dates {
		out = append(out, day.Games...)
	}
	return out
}

// GameByPk finds a game anywhere in the schedule.
func (s Schedule) GameByPk(gamePk int) (Game, bool) {
	for _, day := range s.Dates {
		for _, g := range day.Games {
			if g.GamePk == gamePk {
				return g, true
			}
		}
	}
	return Game{}, false
}

// GameForTeam returns the first game in which teamID plays on either side.
func (s Schedule) GameForTeam(teamID int) (Game, bool) {
	for _, g := range s.Games() {
		if g.Teams.Home.Team.ID == teamID || g.Teams.Away.Team.ID == teamID {
			return g, true
		}
	}
	return Game{}, false
}
