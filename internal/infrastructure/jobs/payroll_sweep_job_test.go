package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
)

type sweeperStub struct {
	calls atomic.Int32
	err   error
}

func (s *sweeperStub) Run(_ context.Context) (*entities.SweepSummary, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	now := time.Now()
	return &entities.SweepSummary{
		StartedAt:  now,
		FinishedAt: now,
		Businesses: []entities.BusinessSweepResult{{BusinessID: "0xb1"}, {BusinessID: "0xb2", Skipped: true, SkipReason: "not due"}},
	}, nil
}

func TestPayrollSweepJob_RunSweepHandlesErrors(t *testing.T) {
	for _, err := range []error{nil, domainerrors.ErrSweepInProgress, errors.New("db down")} {
		sweeper := &sweeperStub{err: err}
		job := NewPayrollSweepJob(sweeper, time.Hour)

		job.runSweep(context.Background())
		require.Equal(t, int32(1), sweeper.calls.Load())
	}
}

func TestPayrollSweepJob_DefaultInterval(t *testing.T) {
	job := NewPayrollSweepJob(&sweeperStub{}, 0)
	require.Equal(t, 24*time.Hour, job.interval)
}

func TestPayrollSweepJob_SweepsOnStartAndTicks(t *testing.T) {
	sweeper := &sweeperStub{}
	job := &PayrollSweepJob{sweeper: sweeper, interval: time.Millisecond, stop: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}

func TestPayrollSweepJob_StopsByContext(t *testing.T) {
	job := NewPayrollSweepJob(&sweeperStub{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestPayrollSweepJob_StopTwice(t *testing.T) {
	job := NewPayrollSweepJob(&sweeperStub{}, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	require.NotPanics(t, func() {
		job.Stop()
		job.Stop()
	})
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
