package providers

import (
	"context"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// ScheduleProvider fetches the schedule for a single YYYY-MM-DD date.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) (games.Schedule, error)
}

// GameInfoProvider fetches the chronological play log for one game.
type GameInfoProvider interface {
	FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error)
}

// DataProvider combines both request categories.
type DataProvider interface {
	ScheduleProvider
	GameInfoProvider
}
