package notifier

import (
	// Go Internal Packages
	"strings"

	// Local Packages
	errors "notif-stream/errors"
	models "notif-stream/models"
)

// BuildNotification synthesizes a notification record from a completed
// transaction event. Pure: no side effects, same event in, same record out.
// Channel and status are fixed policy (EMAIL, PENDING), not derived from
// the event.
func BuildNotification(event *models.TransactionEvent) (*models.Notification, error) {
	if event.UserID == nil {
		return nil, errors.E(errors.Invalid, "userId is missing")
	}
	if event.TransactionID == "" {
		return nil, errors.E(errors.Invalid, "transactionId is missing or empty")
	}

	message := buildMessage(event)
	if message == "" {
		message = "Transaction completed. Transaction ID: " + event.TransactionID
	}

	return &models.Notification{
		NotificationID:   models.NotificationIDFor(event.TransactionID),
		UserID:           event.UserID,
		Recipient:        models.RecipientFor(*event.UserID),
		Type:             models.ChannelEmail,
		NotificationType: models.ChannelEmail,
		Status:           models.DeliveryPending,
		Subject:          "Transaction " + event.TypeOrUnknown(),
		Message:          message,
	}, nil
}

func buildMessage(event *models.TransactionEvent) string {
	var b strings.Builder

	b.WriteString("Transaction ")
	b.WriteString(event.TypeOrUnknown())
	b.WriteString(" completed. ")

	if event.Amount != "" {
		b.WriteString("Amount: ")
		b.WriteString(event.Amount.String())
		if event.Currency != "" {
			b.WriteString(" ")
			b.WriteString(event.Currency)
		}
		b.WriteString(". ")
	}

	if event.Description != "" {
		b.WriteString("Description: ")
		b.WriteString(event.Description)
		b.WriteString(". ")
	}

	b.WriteString("Transaction ID: ")
	b.WriteString(event.TransactionID)

	return b.String()
}
