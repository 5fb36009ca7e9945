// internal/dataset/refresher.go
// Reload periodik dataset dengan gocron.

package dataset

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

type Refresher struct {
	store    *Store
	src      Source
	interval time.Duration
	timeout  time.Duration
	sched    *gocron.Scheduler
}

func NewRefresher(store *Store, src Source, interval time.Duration) *Refresher {
	return &Refresher{store: store, src: src, interval: interval, timeout: time.Minute}
}

// Refresh satu kali load sinkron (dipakai job & startup).
func (r *Refresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.store.Load(ctx, r.src)
	return err
}

// Start schedules Refresh every interval, skipping the immediate first run.
// A zero interval disables the scheduler.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		return nil
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	_, err := s.Every(r.interval).WaitForSchedule().Do(func() {
		// error sudah di-log oleh Store.Load
		_ = r.Refresh(context.Background())
	})
	if err != nil {
		return err
	}
	s.StartAsync()
	r.sched = s
	return nil
}

func (r *Refresher) Stop() {
	if r.sched != nil {
		r.sched.Stop()
		r.sched = nil
	}
}
