package viewer

import (
	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

// Reduce applies one event to s and returns the fetches the host must run.
// Fetched events from a superseded request leave s untouched.
func Reduce(s *State, ev Event) []Command {
	switch e := ev.(type) {
	case SelectDate:
		return selectDate(s, e.Date)

	case PageDate:
		date, err := timeutil.AddDays(s.Date, e.Days)
		if err != nil {
			return nil
		}
		return selectDate(s, date)

	case ScheduleFetched:
		if Stale(s, e) {
			return nil
		}
		if e.Err != nil {
			s.Schedule = ScheduleFailed{}
		} else {
			s.Schedule = ScheduleLoaded{Schedule: e.Schedule}
		}
		return nil

	case SelectGame:
		return selectGame(s, e.Game)

	case GameInfoFetched:
		if Stale(s, e) {
			return nil
		}
		if e.Err != nil {
			s.GameInfo = GameInfoFailed{}
		} else {
			s.GameInfo = GameInfoLoaded{Info: e.Info}
		}
		return nil

	case Hover:
		idx := e.Index
		s.Hover = &idx
		return nil

	case Unhover:
		s.Hover = nil
		return nil

	case RefreshSelectedGame:
		if s.SelectedGame == nil {
			return nil
		}
		return selectGame(s, *s.SelectedGame)

	default:
		return nil
	}
}

// Stale reports whether ev answers a request that has since been superseded.
func Stale(s *State, ev Event) bool {
	switch e := ev.(type) {
	case ScheduleFetched:
		return e.Gen != s.scheduleGen
	case GameInfoFetched:
		return e.Gen != s.gameInfoGen || s.SelectedGame == nil
	default:
		return false
	}
}

func selectDate(s *State, date string) []Command {
	s.Date = date
	s.SelectedGame = nil
	s.Hover = nil
	s.GameInfo = GameInfoNotRequested{}
	s.Schedule = ScheduleLoading{}
	// Any play log still in flight belongs to the old day.
	s.gameInfoGen++
	return []Command{s.nextScheduleFetch()}
}

func selectGame(s *State, g games.Game) []Command {
	selected := g
	s.SelectedGame = &selected
	s.Hover = nil
	s.GameInfo = GameInfoLoading{}
	return []Command{s.nextGameInfoFetch(g.GamePk)}
}
