package archive

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 30 * time.Second

// Janitor periodically deletes expired archives from stores that do not expire on their own.
type Janitor struct {
	purger   archive.Purger
	schedule string
	cron     *cron.Cron
}

func NewJanitor(store archive.Store, schedule string) *Janitor {
	purger, _ := store.(archive.Purger)
	return &Janitor{purger: purger, schedule: schedule}
}

func (j *Janitor) Start() error {
	if j.purger == nil {
		slog.Info("archive store expires entries itself; janitor disabled")
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, j.runOnce); err != nil {
		return err
	}
	j.cron = c
	c.Start()
	slog.Info("archive janitor started", "schedule", j.schedule)
	return nil
}

func (j *Janitor) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()
	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		slog.Error("failed to purge expired archives", "error", err)
		return
	}
	if n > 0 {
		slog.Info("purged expired archives", "count", n)
	}
}

func (j *Janitor) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}
