package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Cron runs task on the standard cron spec (descriptors such as "@hourly"
// and "@every 30m" included) until ctx is done. With runNow the task also
// runs once immediately. A run that is still going when the next one is
// due makes that next run skip.
func Cron(ctx context.Context, spec, name string, log *zap.Logger, runNow bool, task Task) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("task", name))
	cl := cronLogger{s: log.Sugar()}

	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	job := cron.FuncJob(func() {
		if err := task(ctx); err != nil {
			log.Error("task failed", zap.Error(err))
		}
	})
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	id := c.Schedule(sched, job)
	wrapped := c.Entry(id).WrappedJob

	c.Start()
	log.Info("scheduled", zap.String("schedule", spec), zap.Time("next", sched.Next(time.Now())))

	var wg sync.WaitGroup
	if runNow {
		// Through the wrapped job so the skip chain also covers this run.
		wg.Add(1)
		go func() {
			defer wg.Done()
			wrapped.Run()
		}()
	}

	<-ctx.Done()
	<-c.Stop().Done()
	wg.Wait()
	return nil
}

// cronLogger routes cron's own messages into zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, kv ...interface{}) {
	l.s.Debugw(msg, kv...)
}

func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.s.Errorw(msg, append(kv, "error", err)...)
}
