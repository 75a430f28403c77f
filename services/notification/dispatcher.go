package notification

import (
	"context"
	"fmt"
	"time"

	"wayfare/models"

	"github.com/hibiken/asynq"
)

// AsynqDispatcher queues notifications for the background worker instead of
// delivering inline, keeping state transitions fast and delivery retryable.
type AsynqDispatcher struct {
	Client *asynq.Client
}

// NewAsynqDispatcher creates a Dispatcher over the given asynq client.
func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) Notify(ctx context.Context, userID string, kind models.EventKind, payload map[string]string) error {
	task, err := NewNotifyTask(userID, kind, payload)
	if err != nil {
		return err
	}
	enqueueCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := d.Client.EnqueueContext(enqueueCtx, task); err != nil {
		return fmt.Errorf("failed to enqueue notification for %s: %w", userID, err)
	}
	return nil
}
