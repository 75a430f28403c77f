package booking

import (
	"context"
	"time"

	"wayfare/models"
	"wayfare/services/notification"
	"wayfare/utils"

	"go.uber.org/zap"
)

// notify dispatches a lifecycle event to one participant. Fire-and-forget:
// failures are logged and never surface to the caller or undo a transition.
func (s *DefaultBookingService) notify(userID string, kind models.EventKind, booking *models.Booking) {
	if s.Notifier == nil || userID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload := map[string]string{
		"bookingId":   booking.ID,
		"vertical":    booking.Vertical,
		"status":      string(booking.Status),
		"windowStart": booking.WindowStart.Format(time.RFC3339),
		"windowEnd":   booking.WindowEnd.Format(time.RFC3339),
	}
	if err := s.Notifier.Notify(ctx, userID, kind, payload); err != nil {
		utils.GetLogger().Warn("failed to dispatch notification",
			zap.String("userID", userID), zap.String("kind", string(kind)), zap.Error(err))
	}
}

// enqueueRecompute asks the worker to retry a stats recompute that failed
// inline. Best-effort; the recompute is idempotent.
func (s *DefaultBookingService) enqueueRecompute(providerID string) {
	if s.Queue == nil {
		return
	}
	task, err := notification.NewStatsRecomputeTask(providerID)
	if err != nil {
		utils.GetLogger().Error("failed to build stats recompute task",
			zap.String("providerID", providerID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		utils.GetLogger().Error("failed to enqueue stats recompute",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
