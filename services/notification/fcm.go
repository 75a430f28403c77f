package notification

import (
	"context"
	"fmt"

	participantRepo "wayfare/database/repository/participant"
	"wayfare/models"
	"wayfare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

var eventTitles = map[models.EventKind]string{
	models.EventBookingRequested:  "New booking request",
	models.EventBookingDiscussing: "Provider wants to discuss your request",
	models.EventBookingApproved:   "Your booking was approved",
	models.EventBookingRejected:   "Your booking was declined",
	models.EventBookingCanceled:   "A booking was canceled",
	models.EventBookingStarted:    "Your booking has started",
	models.EventBookingCompleted:  "Your booking is complete",
	models.EventReviewReceived:    "You received a new review",
}

// FCMSender pushes notifications to a participant's registered devices.
// Used by the worker, never by request handlers.
type FCMSender struct {
	Messaging    *messaging.Client
	Participants participantRepo.ParticipantRepository
}

// Send resolves the participant's device tokens and pushes to each. A nil
// messaging client (no firebase credentials) makes Send a logged no-op.
func (s *FCMSender) Send(ctx context.Context, userID string, kind models.EventKind, payload map[string]string) error {
	logger := utils.GetLogger()
	if s.Messaging == nil {
		logger.Debug("push delivery disabled, dropping notification",
			zap.String("userID", userID), zap.String("kind", string(kind)))
		return nil
	}

	tokens, err := s.Participants.DeviceTokens(userID)
	if err != nil {
		return fmt.Errorf("failed to resolve device tokens for %s: %w", userID, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	title := eventTitles[kind]
	if title == "" {
		title = string(kind)
	}
	data := map[string]string{"kind": string(kind)}
	for k, v := range payload {
		data[k] = v
	}

	for _, token := range tokens {
		msg := &messaging.Message{
			Token:        token,
			Notification: &messaging.Notification{Title: title},
			Data:         data,
		}
		if _, err := s.Messaging.Send(ctx, msg); err != nil {
			logger.Warn("failed to push notification",
				zap.String("userID", userID), zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return nil
}
