package providers

import (
	"context"
	"testing"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

type testProvider struct{}

func (t *testProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	_ = ctx
	_ = date
	return games.Schedule{}, nil
}

func (t *testProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	_ = ctx
	_ = gamePk
	return nil, nil
}

func TestDataProviderInterfaceImplemented(t *testing.T) {
	var _ DataProvider = (*testProvider)(nil)
}
