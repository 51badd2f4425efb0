package viewer

import (
	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// Status names exposed to renderers.
const (
	StatusNotRequested = "not_requested"
	StatusLoading      = "loading"
	StatusFailed       = "failed"
	StatusLoaded       = "loaded"
)

// ScheduleStatus is one of ScheduleLoading, ScheduleFailed or ScheduleLoaded.
type ScheduleStatus interface {
	scheduleStatus()
}

type ScheduleLoading struct{}

type ScheduleFailed struct{}

type ScheduleLoaded struct {
	Schedule games.Schedule
}

func (ScheduleLoading) scheduleStatus() {}
func (ScheduleFailed) scheduleStatus()  {}
func (ScheduleLoaded) scheduleStatus()  {}

// GameInfoStatus is one of GameInfoNotRequested, GameInfoLoading, GameInfoFailed or GameInfoLoaded.
type GameInfoStatus interface {
	gameInfoStatus()
}

type GameInfoNotRequested struct{}

type GameInfoLoading struct{}

type GameInfoFailed struct{}

type GameInfoLoaded struct {
	Info plays.GameInfo
}

func (GameInfoNotRequested) gameInfoStatus() {}
func (GameInfoLoading) gameInfoStatus()      {}
func (GameInfoFailed) gameInfoStatus()       {}
func (GameInfoLoaded) gameInfoStatus()       {}

// ScheduleStatusName maps a schedule status to its renderer name.
func ScheduleStatusName(s ScheduleStatus) string {
	switch s.(type) {
	case ScheduleLoading:
		return StatusLoading
	case ScheduleFailed:
		return StatusFailed
	case ScheduleLoaded:
		return StatusLoaded
	default:
		panic("viewer: unknown schedule status")
	}
}

// GameInfoStatusName maps a game-info status to its renderer name.
func GameInfoStatusName(s GameInfoStatus) string {
	switch s.(type) {
	case GameInfoNotRequested:
		return StatusNotRequested
	case GameInfoLoading:
		return StatusLoading
	case GameInfoFailed:
		return StatusFailed
	case GameInfoLoaded:
		return StatusLoaded
	default:
		panic("viewer: unknown game info status")
	}
}
