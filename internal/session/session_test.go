package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/teams"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
	"github.com/preston-bernstein/winprob-viewer/internal/teststubs"
	"github.com/preston-bernstein/winprob-viewer/internal/viewer"
)

func game(pk int) games.Game {
	return games.Game{
		GamePk:   pk,
		GameGUID: "guid",
		Teams: games.Matchup{
			Away: games.TeamSide{Team: teams.Team{ID: 111, Name: "Boston Red Sox"}},
			Home: games.TeamSide{Team: teams.Team{ID: 147, Name: "New York Yankees"}},
		},
	}
}

func playLog(n int) plays.GameInfo {
	info := make(plays.GameInfo, n)
	for i := range info {
		info[i] = plays.Play{HomeTeamWinProbability: 50, AwayTeamWinProbability: 50}
	}
	return info
}

func scheduleOf(g ...games.Game) games.Schedule {
	return games.Schedule{TotalItems: len(g), Dates: []games.GameDay{{Date: "2024-06-28", TotalItems: len(g), Games: g}}}
}

func nextCall(t *testing.T, p *teststubs.BlockingProvider) *teststubs.PendingCall {
	t.Helper()
	select {
	case call := <-p.Calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for fetch")
		return nil
	}
}

func waitFor(t *testing.T, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func startSession(t *testing.T, p *teststubs.BlockingProvider, recorder *metrics.Recorder) *Session {
	t.Helper()
	s := New(p, "2024-06-28", nil, recorder, Options{})
	s.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func TestStartFetchesBootstrapSchedule(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)

	call := nextCall(t, p)
	if call.Op != "schedule" || call.Date != "2024-06-28" {
		t.Fatalf("unexpected call %+v", call)
	}
	if got := s.Snapshot().ScheduleStatus; got != viewer.StatusLoading {
		t.Fatalf("expected loading before reply, got %s", got)
	}

	call.ReplySchedule(games.Schedule{TotalItems: 1, Dates: []games.GameDay{{Games: []games.Game{game(1)}}}}, nil)
	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })

	if opts := s.Snapshot().Options; len(opts) != 1 || opts[0].Label != "Boston Red Sox at New York Yankees" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)
	s.Start(context.Background())

	nextCall(t, p)
	select {
	case extra := <-p.Calls:
		t.Fatalf("expected a single bootstrap fetch, got extra %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStaleGameInfoIsDiscarded(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	recorder := metrics.NewRecorder()
	s := startSession(t, p, recorder)
	nextCall(t, p).ReplySchedule(scheduleOf(game(12345), game(54321)), nil)
	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })

	if err := s.Dispatch(viewer.SelectGame{Game: game(12345)}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	first := nextCall(t, p)
	if err := s.Dispatch(viewer.SelectGame{Game: game(54321)}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	second := nextCall(t, p)
	if first.GamePk != 12345 || second.GamePk != 54321 {
		t.Fatalf("unexpected calls %d %d", first.GamePk, second.GamePk)
	}

	first.ReplyGameInfo(playLog(5), nil)
	waitFor(t, "stale discard", func() bool { return s.Status().StaleDiscarded == 1 })
	if v := s.Snapshot(); v.GameInfoStatus != viewer.StatusLoading || v.SelectedGamePk != 54321 {
		t.Fatalf("expected second game still loading, got %+v", v)
	}

	second.ReplyGameInfo(playLog(3), nil)
	waitFor(t, "play log loaded", func() bool { return s.Snapshot().GameInfoStatus == viewer.StatusLoaded })
	if n := len(s.Snapshot().Series); n != 3 {
		t.Fatalf("expected 3 points from the second game, got %d", n)
	}
	if got := recorder.StaleDiscards("game_info"); got != 1 {
		t.Fatalf("expected 1 stale discard recorded, got %d", got)
	}
}

func TestFailedScheduleThenDateChangeFetchesAgain(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)

	nextCall(t, p).ReplySchedule(games.Schedule{}, errors.New("status 500"))
	waitFor(t, "schedule failed", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusFailed })

	if err := s.Dispatch(viewer.SelectDate{Date: "2024-06-29"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	call := nextCall(t, p)
	if call.Date != "2024-06-29" {
		t.Fatalf("expected fetch for new date, got %s", call.Date)
	}
}

func TestDispatchRequiresRunningSession(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := New(p, "2024-06-28", nil, nil, Options{})
	if err := s.Dispatch(viewer.Unhover{}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning before start, got %v", err)
	}

	s.Start(context.Background())
	nextCall(t, p)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := s.Dispatch(viewer.Unhover{}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning after stop, got %v", err)
	}
	if s.Status().Running {
		t.Fatal("expected status not running after stop")
	}
}

func TestStopBeforeStartIsSafe(t *testing.T) {
	s := New(teststubs.NewBlockingProvider(), "2024-06-28", nil, nil, Options{})
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("expected repeated stop to be safe, got %v", err)
	}
}

func TestSubscribersReceiveViewsAndCloseOnStop(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	recorder := metrics.NewRecorder()
	s := New(p, "2024-06-28", nil, recorder, Options{})
	s.Start(context.Background())

	id, ch := s.Subscribe()
	if id == "" {
		t.Fatal("expected subscriber id")
	}
	first := <-ch
	if first.Date != "2024-06-28" {
		t.Fatalf("expected current view first, got %+v", first)
	}
	if recorder.Subscribers() != 1 || s.Subscribers() != 1 {
		t.Fatalf("expected one subscriber, got %d", s.Subscribers())
	}

	nextCall(t, p).ReplySchedule(games.Schedule{}, nil)
	select {
	case v := <-ch:
		if v.ScheduleStatus != viewer.StatusLoaded {
			t.Fatalf("expected loaded view, got %s", v.ScheduleStatus)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected stream closed after stop")
	}
	if recorder.Subscribers() != 0 {
		t.Fatalf("expected subscriber gauge back to 0, got %d", recorder.Subscribers())
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	s := New(teststubs.NewBlockingProvider(), "2024-06-28", nil, nil, Options{})
	id, ch := s.Subscribe()
	<-ch

	s.Unsubscribe(id)
	if _, ok := <-ch; ok {
		t.Fatal("expected closed stream")
	}
	s.Unsubscribe(id)
	s.Unsubscribe("unknown")
	if s.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", s.Subscribers())
	}
}

func TestSessionRunsAgainstStubProvider(t *testing.T) {
	provider := &teststubs.StubProvider{
		Schedule: games.Schedule{TotalItems: 1, Dates: []games.GameDay{{Games: []games.Game{game(7)}}}},
		Info:     playLog(4),
	}
	s := New(provider, "2024-06-28", nil, nil, Options{})
	s.Start(context.Background())
	defer s.Stop(context.Background())

	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })
	if err := s.Dispatch(viewer.SelectGame{Game: game(7)}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, "play log loaded", func() bool { return s.Snapshot().GameInfoStatus == viewer.StatusLoaded })

	if err := s.Dispatch(viewer.Hover{Index: 2}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, "hover", func() bool { return s.Snapshot().Hover != nil })
	if got := provider.GamePks(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected one play-log fetch for 7, got %v", got)
	}
}

func TestGameLookupsUseLoadedSchedule(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)

	if _, ok := s.Game(7); ok {
		t.Fatal("expected no game while the schedule is loading")
	}
	if _, ok := s.FindGame("yankees"); ok {
		t.Fatal("expected no team match while the schedule is loading")
	}

	nextCall(t, p).ReplySchedule(games.Schedule{Dates: []games.GameDay{{Games: []games.Game{game(7)}}}}, nil)
	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })

	if g, ok := s.Game(7); !ok || g.GamePk != 7 {
		t.Fatalf("expected game 7, got %+v %v", g, ok)
	}
	if _, ok := s.Game(8); ok {
		t.Fatal("expected unknown pk to miss")
	}
	if g, ok := s.FindGame("red sox"); !ok || g.GamePk != 7 {
		t.Fatalf("expected red sox to resolve to game 7, got %+v %v", g, ok)
	}
	if _, ok := s.FindGame("dodgers"); ok {
		t.Fatal("expected team without a game to miss")
	}
}

func TestGameSelectedBehindDateChangeIsDropped(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)
	nextCall(t, p).ReplySchedule(scheduleOf(game(1)), nil)
	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })

	g, ok := s.Game(1)
	if !ok {
		t.Fatal("expected game 1 in the loaded schedule")
	}
	if err := s.Dispatch(viewer.SelectDate{Date: "2024-06-29"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if err := s.Dispatch(viewer.SelectGame{Game: g}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	call := nextCall(t, p)
	if call.Op != "schedule" || call.Date != "2024-06-29" {
		t.Fatalf("expected schedule fetch for the new date, got %+v", call)
	}
	waitFor(t, "selection dropped", func() bool { return s.Status().SelectionsDropped == 1 })
	if v := s.Snapshot(); v.Date != "2024-06-29" || v.SelectedGamePk != 0 || v.GameInfoStatus != viewer.StatusNotRequested {
		t.Fatalf("expected no selection on the new date, got %+v", v)
	}
	select {
	case extra := <-p.Calls:
		t.Fatalf("expected no play-log fetch, got %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	call.ReplySchedule(scheduleOf(game(2)), nil)
	waitFor(t, "new schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })
	if err := s.Dispatch(viewer.SelectGame{Game: game(2)}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if call := nextCall(t, p); call.Op != "game_info" || call.GamePk != 2 {
		t.Fatalf("expected play-log fetch for game 2, got %+v", call)
	}
}

func TestStalledSubscriberDoesNotDelayEvents(t *testing.T) {
	provider := &teststubs.StubProvider{Schedule: scheduleOf(game(7)), Info: playLog(5)}
	s := New(provider, "2024-06-28", nil, nil, Options{})
	s.Start(context.Background())
	defer s.Stop(context.Background())

	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })
	if err := s.Dispatch(viewer.SelectGame{Game: game(7)}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, "play log loaded", func() bool { return s.Snapshot().GameInfoStatus == viewer.StatusLoaded })

	_, stalled := s.Subscribe()
	applied := s.Status().EventsApplied

	start := time.Now()
	for i := 1; i <= 4; i++ {
		if err := s.Dispatch(viewer.Hover{Index: i}); err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
	}
	waitFor(t, "hovers applied", func() bool { return s.Status().EventsApplied == applied+4 })
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("events held up by an unread stream: %s", elapsed)
	}

	latest := <-stalled
	if latest.Hover == nil || latest.Hover.Datum.Index != 4 {
		t.Fatalf("expected the unread frame replaced by the newest view, got %+v", latest.Hover)
	}
	select {
	case v := <-stalled:
		t.Fatalf("expected a single pending frame, got another %+v", v.Hover)
	default:
	}
}

func TestSubscribeSeesViewsAppliedConcurrently(t *testing.T) {
	p := teststubs.NewBlockingProvider()
	s := startSession(t, p, nil)
	call := nextCall(t, p)

	replied := make(chan struct{})
	go func() {
		call.ReplySchedule(scheduleOf(game(1)), nil)
		close(replied)
	}()
	_, ch := s.Subscribe()
	<-replied
	waitFor(t, "schedule loaded", func() bool { return s.Snapshot().ScheduleStatus == viewer.StatusLoaded })

	var last viewer.View
	deadline := time.After(time.Second)
	for last.ScheduleStatus != viewer.StatusLoaded {
		select {
		case last = <-ch:
		case <-deadline:
			t.Fatalf("subscriber never saw the loaded schedule, last %+v", last)
		}
	}
}
