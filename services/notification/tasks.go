package notification

import (
	"encoding/json"
	"fmt"

	"wayfare/models"

	"github.com/hibiken/asynq"
)

// Task types handled by the background worker.
const (
	TypeNotifySend     = "notify:send"
	TypeStatsRecompute = "stats:recompute"
)

// NotifyPayload is the body of a notify:send task.
type NotifyPayload struct {
	UserID  string            `json:"userId"`
	Kind    models.EventKind  `json:"kind"`
	Payload map[string]string `json:"payload,omitempty"`
}

// StatsRecomputePayload is the body of a stats:recompute task.
type StatsRecomputePayload struct {
	ProviderID string `json:"providerId"`
}

// NewNotifyTask builds an asynq task carrying one notification.
func NewNotifyTask(userID string, kind models.EventKind, payload map[string]string) (*asynq.Task, error) {
	body, err := json.Marshal(NotifyPayload{UserID: userID, Kind: kind, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notify payload: %w", err)
	}
	return asynq.NewTask(TypeNotifySend, body, asynq.MaxRetry(3)), nil
}

// NewStatsRecomputeTask builds an asynq task asking the worker to recompute
// a provider's rolling stats. The recompute is idempotent, so redundant
// tasks are harmless.
func NewStatsRecomputeTask(providerID string) (*asynq.Task, error) {
	body, err := json.Marshal(StatsRecomputePayload{ProviderID: providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats payload: %w", err)
	}
	return asynq.NewTask(TypeStatsRecompute, body, asynq.MaxRetry(5)), nil
}
