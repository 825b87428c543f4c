package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/notifications"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/queue"
)

// JobSource yields jobs and re-enqueues failed ones. *queue.Queue implements it.
type JobSource interface {
	Dequeue(ctx context.Context) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// NotificationProcessor processes notification dispatch jobs: deliver the
// message, then mark the row as sent.
type NotificationProcessor struct {
	repo   *notifications.Repository
	queue  JobSource
	logger *zap.Logger
}

// NewNotificationProcessor creates a notification dispatch processor.
func NewNotificationProcessor(repo *notifications.Repository, q JobSource, logger *zap.Logger) *NotificationProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationProcessor{repo: repo, queue: q, logger: logger}
}

// Process executes one notification dispatch job.
func (p *NotificationProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeNotification {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.NotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	n, err := p.repo.GetByID(ctx, payload.NotificationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Deleted since enqueue; nothing to deliver.
			p.logger.Info("notification gone", zap.Int64("notification_id", payload.NotificationID))
			return nil
		}
		return fmt.Errorf("load notification: %w", err)
	}
	if n.Enviada {
		p.logger.Info("notification already sent", zap.Int64("notification_id", n.ID))
		return nil
	}

	// Delivery is in-app: the row itself is the inbox entry, so dispatch
	// amounts to flipping enviada once the job is picked up.
	if err := p.repo.MarkSent(ctx, n.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	p.logger.Info("notification dispatched",
		zap.Int64("notification_id", n.ID),
		zap.Int64("user_id", n.UserID))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error. It returns
// once ctx is cancelled, so callers can wait on it for shutdown.
func (p *NotificationProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("notification worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.backoff(ctx)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.backoff(ctx)
			continue
		}
	}
}

// backoff sleeps for the retry interval unless ctx is cancelled first.
func (p *NotificationProcessor) backoff(ctx context.Context) {
	t := time.NewTimer(queue.RetryBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
