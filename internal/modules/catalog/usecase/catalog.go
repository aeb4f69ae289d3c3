package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/catalog/domain"
	catalogdto "studyhub/internal/modules/catalog/dto"
	catalogin "studyhub/internal/modules/catalog/port/in"
	catalogout "studyhub/internal/modules/catalog/port/out"
	notificationdto "studyhub/internal/modules/notification/dto"
	"studyhub/internal/platform/schedule"
)

type Interactor struct {
	feeds     []domain.Feed
	counter   catalogout.FeedCounter
	tracker   catalogout.ContentTracker
	scheduler schedule.Scheduler
	logger    hclog.Logger
	timeout   time.Duration

	mu  sync.Mutex
	job schedule.Job
}

var _ catalogin.Usecase = (*Interactor)(nil)

// NewInteractor rejects invalid feed definitions up front.
func NewInteractor(feeds []domain.Feed, counter catalogout.FeedCounter, tracker catalogout.ContentTracker, scheduler schedule.Scheduler, logger hclog.Logger) (*Interactor, error) {
	for _, feed := range feeds {
		if err := feed.Validate(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		feeds:     append([]domain.Feed(nil), feeds...),
		counter:   counter,
		tracker:   tracker,
		scheduler: scheduler,
		logger:    logger.Named("catalog"),
		timeout:   30 * time.Second,
	}, nil
}

// CheckNow visits every feed in order. A feed that fails is logged and
// reported in its result; the rest are still checked.
func (i *Interactor) CheckNow(ctx context.Context) catalogdto.CheckOutput {
	out := catalogdto.CheckOutput{Results: make([]catalogdto.FeedResult, 0, len(i.feeds))}
	for _, feed := range i.feeds {
		result := catalogdto.FeedResult{Key: feed.Key, Label: feed.DisplayLabel()}
		count, err := i.counter.Count(ctx, feed.Path)
		if err != nil {
			i.logger.Warn("content feed unavailable", "feed", feed.Key, "error", err)
			result.Err = err.Error()
			out.Results = append(out.Results, result)
			continue
		}
		result.Count = count
		check, err := i.tracker.CheckForNewContent(ctx, notificationdto.ContentCheckInput{
			Key:   feed.Key,
			Count: count,
			Label: feed.DisplayLabel(),
		})
		if err != nil {
			i.logger.Warn("record content count", "feed", feed.Key, "error", err)
			result.Err = err.Error()
		}
		result.Notified = check.Notified
		result.Delta = check.Delta
		out.Results = append(out.Results, result)
	}
	return out
}

// Watch runs CheckNow every interval until StopWatching. Calling it again
// replaces the previous schedule.
func (i *Interactor) Watch(interval time.Duration) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.job != nil {
		i.job.Cancel()
		i.job = nil
	}
	job, err := i.scheduler.Every(interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
		defer cancel()
		res := i.CheckNow(ctx)
		i.logger.Debug("content check done", "feeds", len(res.Results), "failed", res.Failed())
	})
	if err != nil {
		return fmt.Errorf("watch content: %w", err)
	}
	i.job = job
	return nil
}

func (i *Interactor) StopWatching() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.job != nil {
		i.job.Cancel()
		i.job = nil
	}
}
