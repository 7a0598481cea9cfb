package historysync

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jpillora/backoff"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/krobus00/rapidwire-bot/pkg/rapidwire"
	"github.com/sirupsen/logrus"
)

const (
	defaultSyncInterval = 30 * time.Second
	defaultMaxPages     = 10
	minFailureBackoff   = time.Second
)

var ErrPublishHistoryFailed = errors.New("failed to publish history entry")

type HistoryFetcher interface {
	GetHistory(ctx context.Context, page int) ([]rapidwire.HistoryEntry, error)
}

type Service struct {
	client    HistoryFetcher
	cursors   CursorStore
	publisher entity.EventPublisher
	interval  time.Duration
	maxPages  int
	backoff   *backoff.Backoff
	now       func() time.Time
}

func NewService(client HistoryFetcher, cursors CursorStore, publisher entity.EventPublisher, interval time.Duration, maxPages int) *Service {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Service{
		client:    client,
		cursors:   cursors,
		publisher: publisher,
		interval:  interval,
		maxPages:  maxPages,
		backoff: &backoff.Backoff{
			Min:    minFailureBackoff,
			Max:    interval,
			Factor: 2,
			Jitter: true,
		},
		now: time.Now,
	}
}

func (s *Service) Run(ctx context.Context) {
	timer := time.NewTimer(s.runOnce(ctx))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			timer.Reset(s.runOnce(ctx))
		}
	}
}

// runOnce returns how long to wait before the next cycle.
func (s *Service) runOnce(ctx context.Context) time.Duration {
	published, err := s.Sync(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return s.interval
		}

		delay := s.backoff.Duration()
		logrus.WithError(err).WithFields(logrus.Fields{
			"attempt":  s.backoff.Attempt(),
			"retry_in": delay.String(),
		}).Error("history sync failed")
		return delay
	}

	s.backoff.Reset()
	if published > 0 {
		logrus.WithField("published", published).Info("history entries synced")
	}

	return s.interval
}

// Sync publishes every entry newer than the stored cursor, oldest first, and
// advances the cursor once all of them are published.
func (s *Service) Sync(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cursor, hasCursor, err := s.cursors.Load(ctx)
	if err != nil {
		return 0, err
	}

	pending, reached, err := s.collect(ctx, cursor, hasCursor)
	if err != nil {
		return 0, err
	}
	if hasCursor && !reached && len(pending) > 0 {
		logrus.WithFields(logrus.Fields{
			"cursor":    cursor.JournalID,
			"max_pages": s.maxPages,
		}).Warn("history cursor not found within the scanned pages, older entries may be missing")
	}
	if len(pending) == 0 {
		return 0, nil
	}

	newest := pending[0]
	slices.Reverse(pending)
	for _, event := range pending {
		subject := constant.HistoryStreamSubjectPrefix + subjectToken(event.Data.OperationType)
		if err := s.publisher.Publish(ctx, subject, event); err != nil {
			return 0, fmt.Errorf("%w %s: %w", ErrPublishHistoryFailed, event.JournalID, err)
		}
	}

	err = s.cursors.Save(ctx, entity.HistoryCursor{
		JournalID: newest.JournalID,
		Timestamp: newest.Data.Timestamp,
		SyncedAt:  s.now().UTC().Unix(),
	})
	if err != nil {
		return 0, fmt.Errorf("save history cursor: %w", err)
	}

	return len(pending), nil
}

// collect walks the pages newest first and stops at the cursor entry.
func (s *Service) collect(ctx context.Context, cursor entity.HistoryCursor, hasCursor bool) ([]*entity.HistoryEntryEvent, bool, error) {
	pending := make([]*entity.HistoryEntryEvent, 0)
	for page := 1; page <= s.maxPages; page++ {
		entries, err := s.client.GetHistory(ctx, page)
		if err != nil {
			return nil, false, fmt.Errorf("fetch history page %d: %w", page, err)
		}
		if len(entries) == 0 {
			return pending, false, nil
		}

		for _, entry := range entries {
			journalID := entity.HistoryJournalID(entry)
			if hasCursor && journalID == cursor.JournalID {
				return pending, true, nil
			}

			pending = append(pending, &entity.HistoryEntryEvent{
				JournalID: journalID,
				Data:      entry,
			})
		}
	}

	return pending, false, nil
}

func subjectToken(operationType string) string {
	token := make([]byte, 0, len(operationType))
	for i := 0; i < len(operationType); i++ {
		c := operationType[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
			token = append(token, c)
		case c >= 'A' && c <= 'Z':
			token = append(token, c+'a'-'A')
		default:
			token = append(token, '_')
		}
	}
	if len(token) == 0 {
		return "unknown"
	}

	return string(token)
}
