package viewer

import (
	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
	// Name labels the event in logs and metrics.
	Name() string
}

// SelectDate switches the viewer to another day and reloads its schedule.
type SelectDate struct {
	Date string
}

// PageDate moves the current date by Days (negative for earlier) and behaves like SelectDate.
type PageDate struct {
	Days int
}

// ScheduleFetched delivers the outcome of a FetchSchedule command.
type ScheduleFetched struct {
	Gen      uint64
	Schedule games.Schedule
	Err      error
}

// SelectGame picks a game from the current schedule and loads its play log.
type SelectGame struct {
	Game games.Game
}

// GameInfoFetched delivers the outcome of a FetchGameInfo command.
type GameInfoFetched struct {
	Gen  uint64
	Info plays.GameInfo
	Err  error
}

// Hover points at a 1-based series index.
type Hover struct {
	Index int
}

// Unhover clears the hover reference.
type Unhover struct{}

// RefreshSelectedGame reloads the play log of the selected game, if any.
type RefreshSelectedGame struct{}

func (SelectDate) isEvent()          {}
func (PageDate) isEvent()            {}
func (ScheduleFetched) isEvent()     {}
func (SelectGame) isEvent()          {}
func (GameInfoFetched) isEvent()     {}
func (Hover) isEvent()               {}
func (Unhover) isEvent()             {}
func (RefreshSelectedGame) isEvent() {}

func (SelectDate) Name() string          { return "select_date" }
func (PageDate) Name() string            { return "page_date" }
func (ScheduleFetched) Name() string     { return "schedule_fetched" }
func (SelectGame) Name() string          { return "select_game" }
func (GameInfoFetched) Name() string     { return "game_info_fetched" }
func (Hover) Name() string               { return "hover" }
func (Unhover) Name() string             { return "unhover" }
func (RefreshSelectedGame) Name() string { return "refresh_selected_game" }

// Command is a side effect requested by Reduce. The host runs it and feeds the result back as an event.
type Command interface {
	isCommand()
}

// FetchSchedule asks the host to load the schedule for Date and reply with ScheduleFetched{Gen}.
type FetchSchedule struct {
	Gen  uint64
	Date string
}

// FetchGameInfo asks the host to load a play log and reply with GameInfoFetched{Gen}.
type FetchGameInfo struct {
	Gen    uint64
	GamePk int
}

func (FetchSchedule) isCommand() {}
func (FetchGameInfo) isCommand() {}
