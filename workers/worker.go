// Package workers runs the asynq consumer for queued side effects:
// notification delivery and stats-recompute retries.
package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"wayfare/config"
	"wayfare/services/notification"
	"wayfare/services/stats"

	"github.com/hibiken/asynq"
)

// Worker consumes background tasks off redis.
type Worker struct {
	Sender     *notification.FCMSender
	Aggregator stats.Aggregator
}

// Start runs the async worker in background.
func (w *Worker) Start() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotifySend, w.handleNotify)
	mux.HandleFunc(notification.TypeStatsRecompute, w.handleStatsRecompute)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func (w *Worker) handleNotify(ctx context.Context, t *asynq.Task) error {
	var payload notification.NotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	return w.Sender.Send(ctx, payload.UserID, payload.Kind, payload.Payload)
}

func (w *Worker) handleStatsRecompute(ctx context.Context, t *asynq.Task) error {
	var payload notification.StatsRecomputePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	_, err := w.Aggregator.Recompute(payload.ProviderID)
	return err
}
