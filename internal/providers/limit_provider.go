package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// rateLimitedProvider spaces calls to the wrapped provider with a token bucket.
// A call waits for a token; it is never dropped or repeated.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

const defaultRequestsPerMinute = 60

// NewRateLimitedProvider returns a DataProvider allowing requestsPerMinute calls with a small burst.
func NewRateLimitedProvider(next DataProvider, requestsPerMinute int, logger *slog.Logger) DataProvider {
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(every), burstFor(requestsPerMinute)),
		logger:  logger,
	}
}

func burstFor(requestsPerMinute int) int {
	// a date change fires one schedule request, a game pick one play-log request
	if requestsPerMinute < 2 {
		return 1
	}
	return 2
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	if err := p.wait(ctx, OpSchedule); err != nil {
		return games.Schedule{}, err
	}
	return p.next.FetchSchedule(ctx, date)
}

func (p *rateLimitedProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	if err := p.wait(ctx, OpGameInfo); err != nil {
		return nil, err
	}
	return p.next.FetchGameInfo(ctx, gamePk)
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		return &FetchError{Op: op, Kind: KindNetwork, Err: ErrProviderUnavailable}
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", slog.String("op", op))
		return &FetchError{Op: op, Kind: KindNetwork, Err: err}
	}
	return nil
}
