package fixture

import (
	"context"
	"fmt"
	"math"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

const (
	providerName  = "fixture"
	gamesPerDay   = 3
	playsPerGame  = 18
	pkBase        = 700000
	pkDaySpacing  = 10
	maxSwingDelta = 18.0
)

// matchups are the [away, home] team ids played every fixture day.
var matchups = [gamesPerDay][2]int{
	{111, 147}, // Red Sox at Yankees
	{137, 119}, // Giants at Dodgers
	{112, 138}, // Cubs at Cardinals
}

// Provider returns deterministic schedules and play logs for local runs and tests.
// The same date or game pk always yields the same payload.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return providerName
}

// FetchSchedule returns three games for any valid date.
func (p *Provider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return games.Schedule{}, &providers.FetchError{Op: providers.OpSchedule, Kind: providers.KindNetwork, Err: err}
	}
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return games.Schedule{}, &providers.FetchError{
			Op:   providers.OpSchedule,
			Kind: providers.KindRequest,
			Err:  fmt.Errorf("invalid date %q: %w", date, err),
		}
	}

	dayIndex := int(day.Unix()/86400) % 10000
	if dayIndex < 0 {
		dayIndex = -dayIndex
	}
	list := make([]games.Game, 0, gamesPerDay)
	for i, m := range matchups {
		pk := pkBase + dayIndex*pkDaySpacing + i
		list = append(list, games.Game{
			GamePk:   pk,
			GameGUID: fmt.Sprintf("fixture-%s-%d", date, i+1),
			Teams: games.Matchup{
				Away: side(m[0], 1+dayIndex%3),
				Home: side(m[1], 1+dayIndex%3),
			},
		})
	}

	return games.Schedule{
		TotalItems: len(list),
		Dates: []games.GameDay{{
			Date:       date,
			TotalItems: len(list),
			Games:      list,
		}},
	}, nil
}

// FetchGameInfo returns a nine-inning play log whose probabilities swing deterministically with the pk.
func (p *Provider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, &providers.FetchError{Op: providers.OpGameInfo, Kind: providers.KindNetwork, Err: err}
	}
	if gamePk <= 0 {
		return nil, &providers.FetchError{
			Op:   providers.OpGameInfo,
			Kind: providers.KindRequest,
			Err:  fmt.Errorf("invalid game pk %d", gamePk),
		}
	}

	info := make(plays.GameInfo, 0, playsPerGame)
	home := 50.0
	homeScore, awayScore := 0, 0
	for i := 0; i < playsPerGame; i++ {
		inning := i/2 + 1
		half := "top"
		if i%2 == 1 {
			half = "bottom"
		}

		swing := maxSwingDelta * math.Sin(float64(gamePk%97+i*7))
		next := clamp(home+swing, 1, 99)
		added := next - home
		home = next

		event, eventType := "Groundout", "field_out"
		switch {
		case added > 8 && half == "bottom":
			homeScore++
			event, eventType = "Home Run", "home_run"
		case added < -8 && half == "top":
			awayScore++
			event, eventType = "Double", "double"
		}

		info = append(info, plays.Play{
			Result: plays.Result{
				PlayType:    "atBat",
				Event:       event,
				EventType:   eventType,
				Description: fmt.Sprintf("%s in the %s of inning %d.", event, half, inning),
				AwayScore:   awayScore,
				HomeScore:   homeScore,
			},
			HomeTeamWinProbability:      round1(home),
			AwayTeamWinProbability:      round1(100 - home),
			HomeTeamWinProbabilityAdded: round1(added),
			AboutInning:                 inning,
			AboutHalfInning:             half,
		})
	}
	return info, nil
}

func side(id, seriesNumber int) games.TeamSide {
	name := fmt.Sprintf("Team %d", id)
	if entry, ok := teams.Lookup(id); ok {
		name = entry.FullName
	}
	return games.TeamSide{Team: teams.Team{ID: id, Name: name}, SeriesNumber: seriesNumber}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
