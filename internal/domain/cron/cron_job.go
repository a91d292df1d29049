package cron

import (
	"context"
	"sync"
	"time"

	"github.com/sponsornet/backend/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

type CronJobManager struct {
	mutex   sync.Mutex
	running sync.WaitGroup
	timers  map[CronJob]*time.Timer
	stopped bool
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{timers: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.timers[job] = nil
}

// Start schedules all registered jobs and blocks until ctx is done. A job
// which is running at that time is allowed to finish.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started")

	// Jobs must not be interrupted in the middle of a database transaction.
	jobCtx := context.WithoutCancel(ctx)

	m.mutex.Lock()
	for job := range m.timers {
		job := job
		if job.RunNow() {
			m.timers[job] = time.AfterFunc(0, func() { m.run(jobCtx, job) })
		} else {
			m.schedule(jobCtx, job)
		}
	}
	m.mutex.Unlock()

	<-ctx.Done()
	m.stop()
	m.running.Wait()

	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stopped = true
	for _, timer := range m.timers {
		if timer != nil {
			timer.Stop()
		}
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	m.mutex.Lock()
	if m.stopped {
		m.mutex.Unlock()
		return
	}
	m.running.Add(1)
	m.mutex.Unlock()
	defer m.running.Done()

	xcontext.Logger(ctx).Infof("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Infof("%T ok", job)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.schedule(ctx, job)
}

// schedule must be called with the mutex held.
func (m *CronJobManager) schedule(ctx context.Context, job CronJob) {
	if m.stopped {
		return
	}

	next := job.Next()
	xcontext.Logger(ctx).Debugf("%T is scheduled at %s", job, next.Format(time.RFC3339))
	m.timers[job] = time.AfterFunc(time.Until(next), func() { m.run(ctx, job) })
}
