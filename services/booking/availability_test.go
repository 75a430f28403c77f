package booking_test

import (
	"testing"
	"time"

	"wayfare/models"
	"wayfare/services/svcerr"

	"github.com/stretchr/testify/require"
)

// TestCheckAvailability_emptyCalendar verifies a provider with no bookings
// is available everywhere.
func TestCheckAvailability_emptyCalendar(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	result, err := svc.CheckAvailability(providerID, start, end)
	require.NoError(t, err)
	require.True(t, result.Available)
	require.Empty(t, result.Conflicts)
}

// TestCheckAvailability_pendingDoesNotBlock verifies any number of PENDING
// requests may stack on one window without reserving it.
func TestCheckAvailability_pendingDoesNotBlock(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	request(t, svc, "req-a", start, end)
	request(t, svc, "req-b", start, end)

	result, err := svc.CheckAvailability(providerID, start, end)
	require.NoError(t, err)
	require.True(t, result.Available)
}

// TestCheckAvailability_approvedBlocks verifies APPROVED reserves the window
// and the conflict is reported.
func TestCheckAvailability_approvedBlocks(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)
	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	result, err := svc.CheckAvailability(providerID, start.Add(time.Hour), end.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	require.Equal(t, b.ID, result.Conflicts[0].ID)
	require.Equal(t, models.StatusApproved, result.Conflicts[0].Status)
}

// TestCheckAvailability_halfOpenEdges verifies back-to-back windows do not
// conflict: a booking ending at T leaves [T, ...) free.
func TestCheckAvailability_halfOpenEdges(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)
	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	after, err := svc.CheckAvailability(providerID, end, end.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, after.Available)

	before, err := svc.CheckAvailability(providerID, start.Add(-2*time.Hour), start)
	require.NoError(t, err)
	require.True(t, before.Available)

	touching, err := svc.CheckAvailability(providerID, end.Add(-time.Minute), end.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, touching.Available)
}

// TestCheckAvailability_terminalDoesNotBlock verifies canceled and rejected
// bookings release their window.
func TestCheckAvailability_terminalDoesNotBlock(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	canceled := request(t, svc, "req-a", start, end)
	_, err := svc.RespondToBooking(canceled.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)
	_, err = svc.CancelBooking(canceled.ID, providerID, "weather")
	require.NoError(t, err)

	rejected := request(t, svc, "req-b", start, end)
	_, err = svc.RespondToBooking(rejected.ID, providerID, models.DecisionReject, nil)
	require.NoError(t, err)

	result, err := svc.CheckAvailability(providerID, start, end)
	require.NoError(t, err)
	require.True(t, result.Available)
}

// TestCheckAvailability_invalidWindow verifies degenerate windows are
// rejected rather than answered.
func TestCheckAvailability_invalidWindow(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	_, err := svc.CheckAvailability(providerID, end, start)
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))

	_, err = svc.CheckAvailability(providerID, start, start)
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))

	_, err = svc.CheckAvailability(providerID, time.Time{}, end)
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
}
