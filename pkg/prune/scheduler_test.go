package prune

import (
	"context"
	"testing"
)

func newTestScheduler(schedule string) *Scheduler {
	dialer := &fakeDialer{conns: map[string]*fakeConn{"A": {addr: "A"}}}
	runner := NewRunner(testConfig("A"), dialer, nil, nil, nil)
	return NewScheduler(runner, schedule, nil)
}

func TestScheduler_RejectsEmptySchedule(t *testing.T) {
	s := newTestScheduler("")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

func TestScheduler_RejectsInvalidCron(t *testing.T) {
	s := newTestScheduler("not a cron expression")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler("0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler should be running after Start")
	}
	if s.NextRun() == nil {
		t.Error("NextRun() should be set after Start")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should not be running after Stop")
	}
}
