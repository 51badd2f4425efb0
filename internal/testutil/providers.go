package testutil

import (
	"context"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
)

// ErrProvider fails every fetch with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	return games.Schedule{}, p.Err
}

func (p ErrProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	return nil, p.Err
}

// EmptyProvider returns an empty schedule and an empty play log.
type EmptyProvider struct{}

func (EmptyProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	return games.Schedule{}, nil
}

func (EmptyProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	return plays.GameInfo{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	return games.Schedule{}, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	return nil, providers.ErrProviderUnavailable
}
