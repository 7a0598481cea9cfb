package historyjournal

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/rapidwire-bot/internal/constant"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/krobus00/rapidwire-bot/internal/infrastructure"
	"github.com/krobus00/rapidwire-bot/internal/util"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

var ErrInvalidHistoryEvent = errors.New("invalid history event")

type HistoryRecorder interface {
	Create(ctx context.Context, record *entity.HistoryRecord) (bool, error)
}

type Service struct {
	js         nats.JetStreamContext
	repo       HistoryRecorder
	publisher  entity.EventPublisher
	maxRetries int
	timeout    time.Duration
	now        func() time.Time
}

func NewService(js nats.JetStreamContext, repo HistoryRecorder, publisher entity.EventPublisher, maxRetries int, timeout time.Duration) *Service {
	return &Service{
		js:         js,
		repo:       repo,
		publisher:  publisher,
		maxRetries: maxRetries,
		timeout:    timeout,
		now:        time.Now,
	}
}

func (s *Service) JetstreamEventInit(ctx context.Context) error {
	return infrastructure.EnsureStream(ctx, s.js, infrastructure.HistoryStreamConfig())
}

func (s *Service) JetstreamEventSubscribe(ctx context.Context) error {
	err := s.JetstreamEventInit(ctx)
	if err != nil {
		logrus.Error(err)
		return err
	}

	_, err = s.js.QueueSubscribe(
		constant.HistoryStreamSubjectAll,
		constant.HistoryQueueNameJournal,
		func(msg *nats.Msg) {
			err := util.ProcessWithTimeout(s.timeout, msg, func(ctx context.Context, msg *nats.Msg) error {
				return s.HandleEvent(ctx, msg.Subject, msg.Data)
			})
			if err != nil {
				logrus.Errorf("error processing message: %v", err)
			}

			// failures are re-published by HandleEvent
			err = msg.Ack()
			if err != nil {
				logrus.Errorf("failed to acknowledge message: %v", err)
			}
		},
		nats.ManualAck(),
		nats.Durable(constant.HistoryQueueGroup),
	)

	return err
}

// HandleEvent journals one history entry. A failed insert is re-published on
// the same subject until the event runs out of retries.
func (s *Service) HandleEvent(ctx context.Context, subject string, data []byte) (err error) {
	logger := logrus.WithFields(logrus.Fields{
		"subject": subject,
		"event":   string(data),
	})

	var event *entity.HistoryEntryEvent
	if err := json.Unmarshal(data, &event); err != nil || event == nil {
		logger.WithError(err).Error("dropping undecodable history event")
		return ErrInvalidHistoryEvent
	}

	defer func() {
		if err == nil {
			return
		}

		event.RetryCount++
		if event.RetryCount >= s.maxRetries {
			logger.WithField("retry", event.RetryCount).Error("history event ran out of retries")
			return
		}

		pubErr := s.publisher.Publish(context.WithoutCancel(ctx), subject, event)
		if pubErr != nil {
			logger.WithError(pubErr).Error("failed to re-publish history event")
		}
	}()

	journalID := event.JournalID
	if journalID == "" {
		journalID = entity.HistoryJournalID(event.Data)
	}

	inserted, err := s.repo.Create(ctx, entity.NewHistoryRecord(journalID, event.Data, s.now().UTC()))
	if err != nil {
		return err
	}

	if !inserted {
		logger.WithField("journal_id", journalID).Debug("history entry already journaled")
	}

	return nil
}
