// Package session hosts one viewer state machine behind a single event loop.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
	"github.com/preston-bernstein/winprob-viewer/internal/logging"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/viewer"
)

const defaultQueueSize = 64

// ErrNotRunning is returned by Dispatch before Start or after Stop.
var ErrNotRunning = errors.New("session not running")

// Options tune a Session. Zero values fall back to defaults.
type Options struct {
	QueueSize int
}

// Status describes the loop's recent activity.
type Status struct {
	Running           bool
	EventsApplied     int
	StaleDiscarded    int
	SelectionsDropped int
	LastEvent         time.Time
}

// Session owns one viewer.State. Events are applied one at a time by a single goroutine;
// fetch commands run in their own goroutines and re-enter the loop as events.
type Session struct {
	provider providers.DataProvider
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	events   chan viewer.Event
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	stateMu sync.RWMutex
	state   *viewer.State
	view    viewer.View
	status  Status

	subsMu     sync.RWMutex
	subs       map[string]chan viewer.View
	subsClosed bool
}

// New constructs a Session bootstrapped on date. Nothing is fetched until Start.
func New(provider providers.DataProvider, date string, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Session {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	state := viewer.NewState(date)
	return &Session{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		events:   make(chan viewer.Event, opts.QueueSize),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
		state:    state,
		view:     viewer.Render(state),
		subs:     make(map[string]chan viewer.View),
	}
}

// Start issues the initial schedule fetch and begins applying events until ctx is cancelled or Stop is called.
func (s *Session) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.stateMu.Lock()
	cmds := viewer.Init(s.state)
	s.status.Running = true
	s.stateMu.Unlock()

	logging.Info(s.logger, "session started", logging.FieldDate, s.Snapshot().Date)
	s.run(fetchCtx, cmds)

	go func() {
		defer close(s.exited)
		for {
			select {
			case <-ctx.Done():
				s.shutdown()
				return
			case <-s.done:
				s.shutdown()
				return
			case ev := <-s.events:
				s.apply(fetchCtx, ev)
			}
		}
	}()
}

// Stop halts the loop, cancels in-flight fetches and closes every subscriber stream.
func (s *Session) Stop(ctx context.Context) error {
	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()

	s.stopOnce.Do(func() {
		close(s.done)
	})
	if !started {
		return nil
	}

	select {
	case <-s.exited:
	case <-ctx.Done():
		return ctx.Err()
	}

	waited := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch queues a user event. It blocks only while the queue is full.
func (s *Session) Dispatch(ev viewer.Event) error {
	if !s.running() {
		return ErrNotRunning
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrNotRunning
	}
}

// Snapshot returns the view rendered after the most recent event.
func (s *Session) Snapshot() viewer.View {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.view
}

// Status returns a copy of the loop's recent activity.
func (s *Session) Status() Status {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.status
}

// Game returns a game from the loaded schedule.
func (s *Session) Game(gamePk int) (games.Game, bool) {
	schedule, ok := s.loadedSchedule()
	if !ok {
		return games.Game{}, false
	}
	return schedule.GameByPk(gamePk)
}

// Dispatch may queue a SelectGame behind a date change, so the game is checked again
// against the schedule in effect when the event is applied. Callers hold stateMu.
func (s *Session) inCurrentSchedule(g games.Game) bool {
	loaded, ok := s.state.Schedule.(viewer.ScheduleLoaded)
	if !ok {
		return false
	}
	_, ok = loaded.Schedule.GameByPk(g.GamePk)
	return ok
}

// FindGame resolves a free-form team name to that team's game in the loaded schedule.
func (s *Session) FindGame(team string) (games.Game, bool) {
	entry, ok := teams.Find(team)
	if !ok {
		return games.Game{}, false
	}
	schedule, ok := s.loadedSchedule()
	if !ok {
		return games.Game{}, false
	}
	return schedule.GameForTeam(entry.ID)
}

func (s *Session) loadedSchedule() (games.Schedule, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	switch st := s.state.Schedule.(type) {
	case viewer.ScheduleLoaded:
		return st.Schedule, true
	case viewer.ScheduleLoading, viewer.ScheduleFailed:
		return games.Schedule{}, false
	default:
		return games.Schedule{}, false
	}
}

func (s *Session) running() bool {
	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if !started {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Session) apply(ctx context.Context, ev viewer.Event) {
	s.metrics.RecordSessionEvent(ev.Name())

	s.stateMu.Lock()
	if viewer.Stale(s.state, ev) {
		s.status.StaleDiscarded++
		s.stateMu.Unlock()
		s.discard(ev)
		return
	}
	if sel, ok := ev.(viewer.SelectGame); ok && !s.inCurrentSchedule(sel.Game) {
		s.status.SelectionsDropped++
		date := s.state.Date
		s.stateMu.Unlock()
		logging.Warn(s.logger, "dropped game selection outside the current schedule",
			logging.FieldGamePk, sel.Game.GamePk,
			logging.FieldDate, date,
		)
		return
	}
	cmds := viewer.Reduce(s.state, ev)
	s.view = viewer.Render(s.state)
	s.status.EventsApplied++
	s.status.LastEvent = s.now()
	view := s.view
	s.stateMu.Unlock()

	s.broadcast(view)
	s.run(ctx, cmds)
}

func (s *Session) discard(ev viewer.Event) {
	op := providers.OpSchedule
	gen := uint64(0)
	switch e := ev.(type) {
	case viewer.ScheduleFetched:
		gen = e.Gen
	case viewer.GameInfoFetched:
		op = providers.OpGameInfo
		gen = e.Gen
	}
	s.metrics.RecordStaleDiscard(op)
	logging.Info(s.logger, "discarded stale response",
		logging.FieldOp, op,
		logging.FieldGeneration, gen,
	)
}

// run starts one goroutine per command. Results are delivered back as events.
func (s *Session) run(ctx context.Context, cmds []viewer.Command) {
	for _, cmd := range cmds {
		s.inflight.Add(1)
		go func(cmd viewer.Command) {
			defer s.inflight.Done()
			if ev := s.execute(ctx, cmd); ev != nil {
				s.deliver(ev)
			}
		}(cmd)
	}
}

func (s *Session) execute(ctx context.Context, cmd viewer.Command) viewer.Event {
	switch c := cmd.(type) {
	case viewer.FetchSchedule:
		schedule, err := s.provider.FetchSchedule(ctx, c.Date)
		return viewer.ScheduleFetched{Gen: c.Gen, Schedule: schedule, Err: err}
	case viewer.FetchGameInfo:
		info, err := s.provider.FetchGameInfo(ctx, c.GamePk)
		return viewer.GameInfoFetched{Gen: c.Gen, Info: info, Err: err}
	default:
		logging.Warn(s.logger, "unknown session command")
		return nil
	}
}

func (s *Session) deliver(ev viewer.Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) shutdown() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	if s.cancel != nil {
		s.cancel()
	}
	s.stateMu.Lock()
	s.status.Running = false
	s.stateMu.Unlock()
	s.closeSubscribers()
	logging.Info(s.logger, "session stopped")
}

// Subscribe registers a stream of views. The current view is queued immediately.
func (s *Session) Subscribe() (string, <-chan viewer.View) {
	id := uuid.NewString()
	ch := make(chan viewer.View, 1)

	s.subsMu.Lock()
	if s.subsClosed {
		s.subsMu.Unlock()
		close(ch)
		return id, ch
	}
	// Registered and seeded under subsMu so a concurrent broadcast either lands
	// after the seed or was already reflected in it.
	s.subs[id] = ch
	ch <- s.Snapshot()
	s.subsMu.Unlock()

	s.metrics.RecordSubscribers(1)
	return id, ch
}

// Unsubscribe removes and closes a stream. Unknown ids are ignored.
func (s *Session) Unsubscribe(id string) {
	s.subsMu.Lock()
	ch, ok := s.subs[id]
	if ok {
		delete(s.subs, id)
		close(ch)
	}
	s.subsMu.Unlock()
	if ok {
		s.metrics.RecordSubscribers(-1)
	}
}

// Subscribers reports how many streams are registered.
func (s *Session) Subscribers() int {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	return len(s.subs)
}

// broadcast never blocks the loop. A subscriber that has not read its previous frame
// gets that frame replaced, since every view is complete.
func (s *Session) broadcast(view viewer.View) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for id, ch := range s.subs {
		select {
		case ch <- view:
			continue
		default:
		}
		select {
		case <-ch:
			logging.Debug(s.logger, "replaced unread view frame", "subscriber", id)
		default:
		}
		select {
		case ch <- view:
		default:
		}
	}
}

func (s *Session) closeSubscribers() {
	s.subsMu.Lock()
	s.subsClosed = true
	n := len(s.subs)
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subsMu.Unlock()
	if n > 0 {
		s.metrics.RecordSubscribers(-n)
	}
}
