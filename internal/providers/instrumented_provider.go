package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/logging"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
)

// instrumentedProvider logs and records every fetch. It makes exactly one inner call per fetch.
type instrumentedProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	now          func() time.Time
}

// NewInstrumentedProvider wraps inner with logging and metrics.
func NewInstrumentedProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string) DataProvider {
	if providerName == "" {
		providerName = "provider"
	}
	return &instrumentedProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		now:          time.Now,
	}
}

func (p *instrumentedProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	if p.inner == nil {
		return games.Schedule{}, &FetchError{Op: OpSchedule, Kind: KindNetwork, Err: ErrProviderUnavailable}
	}
	start := p.now()
	schedule, err := p.inner.FetchSchedule(ctx, date)
	p.observe(ctx, OpSchedule, start, err, slog.String(logging.FieldDate, date), slog.Int(logging.FieldCount, len(schedule.Games())))
	if err != nil {
		return games.Schedule{}, err
	}
	return schedule, nil
}

func (p *instrumentedProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	if p.inner == nil {
		return nil, &FetchError{Op: OpGameInfo, Kind: KindNetwork, Err: ErrProviderUnavailable}
	}
	start := p.now()
	info, err := p.inner.FetchGameInfo(ctx, gamePk)
	p.observe(ctx, OpGameInfo, start, err, slog.Int(logging.FieldGamePk, gamePk), slog.Int(logging.FieldCount, len(info)))
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (p *instrumentedProvider) observe(ctx context.Context, op string, start time.Time, err error, attrs ...any) {
	duration := p.now().Sub(start)
	kind := ""
	if err != nil {
		kind = string(KindOf(err))
	}
	p.metrics.RecordFetchAttempt(p.providerName, op, duration, kind)

	logger := logging.FromContext(ctx, p.logger)
	attrs = append(attrs,
		slog.String(logging.FieldOp, op),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	if err != nil {
		attrs = append(attrs, slog.String(logging.FieldKind, kind), "error", err)
		logWithProvider(ctx, logger, slog.LevelWarn, p.providerName, "provider fetch failed", attrs...)
		return
	}
	logWithProvider(ctx, logger, slog.LevelInfo, p.providerName, "provider fetch complete", attrs...)
}
