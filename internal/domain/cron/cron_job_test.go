package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countJob struct {
	runNow   bool
	interval time.Duration
	count    atomic.Int32
}

func (job *countJob) Do(context.Context) {
	job.count.Add(1)
}

func (job *countJob) RunNow() bool {
	return job.runNow
}

func (job *countJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

func TestCronJobManager(t *testing.T) {
	immediate := &countJob{runNow: true, interval: time.Hour}
	periodic := &countJob{interval: 10 * time.Millisecond}
	never := &countJob{interval: time.Hour}

	m := NewCronJobManager()
	m.Register(immediate)
	m.Register(periodic)
	m.Register(never)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	m.Start(ctx)

	require.Equal(t, int32(1), immediate.count.Load())
	require.GreaterOrEqual(t, periodic.count.Load(), int32(2))
	require.Equal(t, int32(0), never.count.Load())

	// Nothing runs after the manager stopped.
	count := periodic.count.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, count, periodic.count.Load())
}
