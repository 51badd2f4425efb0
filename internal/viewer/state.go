// Package viewer holds the application state machine: one State, mutated only by Reduce.
package viewer

import "github.com/preston-bernstein/winprob-viewer/internal/domain/games"

// State is the whole viewer state for one session.
type State struct {
	Date         string
	SelectedGame *games.Game
	Schedule     ScheduleStatus
	GameInfo     GameInfoStatus
	// Hover is a 1-based series index, resolved at render time.
	Hover *int

	scheduleGen uint64
	gameInfoGen uint64
}

// NewState returns the initial state for date: schedule loading, nothing selected.
// Call Init to get the matching first command.
func NewState(date string) *State {
	return &State{
		Date:     date,
		Schedule: ScheduleLoading{},
		GameInfo: GameInfoNotRequested{},
	}
}

// Init issues the first schedule fetch for the bootstrap date.
func Init(s *State) []Command {
	return []Command{s.nextScheduleFetch()}
}

// ScheduleGen is the generation a ScheduleFetched event must carry to be applied.
func (s *State) ScheduleGen() uint64 {
	return s.scheduleGen
}

// GameInfoGen is the generation a GameInfoFetched event must carry to be applied.
func (s *State) GameInfoGen() uint64 {
	return s.gameInfoGen
}

func (s *State) nextScheduleFetch() Command {
	s.scheduleGen++
	return FetchSchedule{Gen: s.scheduleGen, Date: s.Date}
}

func (s *State) nextGameInfoFetch(gamePk int) Command {
	s.gameInfoGen++
	return FetchGameInfo{Gen: s.gameInfoGen, GamePk: gamePk}
}
