package notifier

import (
	// Go Internal Packages
	"encoding/json"
	"testing"

	// Local Packages
	errors "notif-stream/errors"
	models "notif-stream/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotificationFullMessage(t *testing.T) {
	event := &models.TransactionEvent{
		TransactionID:   "T1",
		TransactionType: "TRANSFER",
		Amount:          json.Number("100.00"),
		Currency:        "USD",
		Status:          models.StatusCompleted,
		UserID:          userID(42),
		Description:     "rent",
	}

	n, err := BuildNotification(event)
	require.NoError(t, err)

	assert.Equal(t, "Transaction TRANSFER completed. Amount: 100.00 USD. Description: rent. Transaction ID: T1", n.Message)
	assert.Equal(t, "Transaction TRANSFER", n.Subject)
	assert.Equal(t, "NOTIF-T1", n.NotificationID)
	assert.Equal(t, "user-42@ebank.local", n.Recipient)
}

func TestBuildNotificationMessageSegments(t *testing.T) {
	tests := []struct {
		name  string
		event models.TransactionEvent
		want  string
	}{
		{
			name:  "missing amount omits the amount segment",
			event: models.TransactionEvent{TransactionID: "T2", TransactionType: "DEPOSIT", UserID: userID(7)},
			want:  "Transaction DEPOSIT completed. Transaction ID: T2",
		},
		{
			name:  "amount without currency",
			event: models.TransactionEvent{TransactionID: "T3", TransactionType: "WITHDRAWAL", Amount: json.Number("50"), UserID: userID(7)},
			want:  "Transaction WITHDRAWAL completed. Amount: 50. Transaction ID: T3",
		},
		{
			name:  "missing type renders Unknown",
			event: models.TransactionEvent{TransactionID: "T4", UserID: userID(7)},
			want:  "Transaction Unknown completed. Transaction ID: T4",
		},
		{
			name:  "description without amount",
			event: models.TransactionEvent{TransactionID: "T5", TransactionType: "TRANSFER", Description: "gift", UserID: userID(7)},
			want:  "Transaction TRANSFER completed. Description: gift. Transaction ID: T5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := BuildNotification(&tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Message)
		})
	}
}

func TestBuildNotificationPreconditions(t *testing.T) {
	_, err := BuildNotification(&models.TransactionEvent{TransactionID: "T1"})
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Invalid, err))

	_, err = BuildNotification(&models.TransactionEvent{UserID: userID(42)})
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Invalid, err))
}

func TestBuildNotificationFixedPolicy(t *testing.T) {
	n, err := BuildNotification(&models.TransactionEvent{TransactionID: "T1", UserID: userID(1)})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelEmail, n.Type)
	assert.Equal(t, models.ChannelEmail, n.NotificationType)
	assert.Equal(t, models.DeliveryPending, n.Status)
}
