package workers

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
)

type errorLogPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionLoop periodically purges persisted error records older than
// the configured age. Old diagnostic detail is a liability once its
// correlation window has passed.
type RetentionLoop struct {
	repo   errorLogPurger
	age    time.Duration
	period time.Duration
}

func NewRetentionLoop(repo errorLogPurger, config Config) *RetentionLoop {
	return &RetentionLoop{
		repo:   repo,
		age:    config.RetentionAge,
		period: config.RetentionEvery,
	}
}

// Start blocks until ctx is cancelled, purging once per period. The
// first purge runs immediately so restarts don't postpone cleanup.
func (l *RetentionLoop) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	l.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("retention loop stopped")
			return nil
		case <-ticker.C:
			l.purge(ctx)
		}
	}
}

// PurgeOnce runs a single purge pass, for the CLI one-shot command.
func (l *RetentionLoop) PurgeOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-l.age)
	return l.repo.DeleteOlderThan(ctx, cutoff)
}

func (l *RetentionLoop) purge(ctx context.Context) {
	removed, err := l.PurgeOnce(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to purge expired error records")
		return
	}
	if removed > 0 {
		logger.WithField("removed", removed).Info("Purged expired error records")
	}
}
