package notification

import (
	"context"

	"wayfare/models"
)

// Dispatcher delivers a lifecycle event to a participant. Delivery is
// best-effort: callers log failures and never let them block or roll back
// a state transition.
type Dispatcher interface {
	Notify(ctx context.Context, userID string, kind models.EventKind, payload map[string]string) error
}
