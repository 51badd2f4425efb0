package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
)

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	Schedule      games.Schedule
	Info          plays.GameInfo
	Err           error
	ScheduleCalls atomic.Int32
	GameInfoCalls atomic.Int32
	Notify        chan struct{}

	mu      sync.Mutex
	dates   []string
	gamePks []int
}

// FetchSchedule returns the configured schedule and error while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	_ = ctx
	s.notify()
	s.ScheduleCalls.Add(1)
	s.mu.Lock()
	s.dates = append(s.dates, date)
	s.mu.Unlock()
	return s.Schedule, s.Err
}

// FetchGameInfo returns the configured play log and error while tracking calls.
func (s *StubProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	_ = ctx
	s.notify()
	s.GameInfoCalls.Add(1)
	s.mu.Lock()
	s.gamePks = append(s.gamePks, gamePk)
	s.mu.Unlock()
	return s.Info, s.Err
}

// Dates returns the dates requested so far.
func (s *StubProvider) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// GamePks returns the game ids requested so far.
func (s *StubProvider) GamePks() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.gamePks...)
}

func (s *StubProvider) notify() {
	if s.Notify == nil {
		return
	}
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}

// PendingCall is a fetch parked inside a BlockingProvider until the test replies.
type PendingCall struct {
	Op     string
	Date   string
	GamePk int
	reply  chan reply
}

type reply struct {
	schedule games.Schedule
	info     plays.GameInfo
	err      error
}

// ReplySchedule releases a parked schedule fetch.
func (c *PendingCall) ReplySchedule(s games.Schedule, err error) {
	c.reply <- reply{schedule: s, err: err}
}

// ReplyGameInfo releases a parked play-log fetch.
func (c *PendingCall) ReplyGameInfo(info plays.GameInfo, err error) {
	c.reply <- reply{info: info, err: err}
}

// BlockingProvider parks every fetch on Calls so tests control response ordering.
type BlockingProvider struct {
	Calls chan *PendingCall
}

// NewBlockingProvider constructs a BlockingProvider with a buffered call queue.
func NewBlockingProvider() *BlockingProvider {
	return &BlockingProvider{Calls: make(chan *PendingCall, 16)}
}

// FetchSchedule parks until ReplySchedule or context cancellation.
func (p *BlockingProvider) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	call := &PendingCall{Op: "schedule", Date: date, reply: make(chan reply, 1)}
	p.Calls <- call
	select {
	case r := <-call.reply:
		return r.schedule, r.err
	case <-ctx.Done():
		return games.Schedule{}, ctx.Err()
	}
}

// FetchGameInfo parks until ReplyGameInfo or context cancellation.
func (p *BlockingProvider) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	call := &PendingCall{Op: "game_info", GamePk: gamePk, reply: make(chan reply, 1)}
	p.Calls <- call
	select {
	case r := <-call.reply:
		return r.info, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
