package models

import (
	// Go Internal Packages
	"fmt"
	"time"
)

// Channel is the delivery channel of a notification. Legacy records carry
// it twice (type and notification_type); both fields share this vocabulary
// and are kept in agreement by ApplyDefaults.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"

	// ChannelDefault is a legacy sentinel some producers still send.
	// It is never persisted; ApplyDefaults remaps it to EMAIL.
	ChannelDefault Channel = "DEFAULT"
)

// DeliveryStatus is the lifecycle state of a notification record.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
)

type Notification struct {
	ID               int64          `json:"id" bson:"_id"`
	NotificationID   string         `json:"notificationId" bson:"notification_id"`
	UserID           *int64         `json:"userId,omitempty" bson:"user_id,omitempty"`
	Recipient        string         `json:"recipient" bson:"recipient"`
	Type             Channel        `json:"type" bson:"type"`
	NotificationType Channel        `json:"notificationType" bson:"notification_type"`
	Status           DeliveryStatus `json:"status" bson:"status"`
	Subject          string         `json:"subject,omitempty" bson:"subject,omitempty"`
	Message          string         `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt        time.Time      `json:"createdAt" bson:"created_at"`
}

// NotificationPatch is a sparse update: nil fields are left unchanged.
type NotificationPatch struct {
	UserID           *int64          `json:"userId"`
	Message          *string         `json:"message"`
	Type             *Channel        `json:"type"`
	NotificationType *Channel        `json:"notificationType"`
	Status           *DeliveryStatus `json:"status"`
	NotificationID   *string         `json:"notificationId"`
	Recipient        *string         `json:"recipient"`
	Subject          *string         `json:"subject"`
}

// NotificationIDFor derives the deterministic business key for a transaction.
// Redelivered events map to the same key, which is what makes creation
// idempotent under the store's uniqueness constraint.
func NotificationIDFor(transactionID string) string {
	return "NOTIF-" + transactionID
}

// RecipientFor derives the recipient address for a user.
func RecipientFor(userID int64) string {
	return fmt.Sprintf("user-%d@ebank.local", userID)
}

// ApplyDefaults fills the fields every persisted notification must carry.
// If only one of the two channel fields is set the other mirrors it; the
// legacy DEFAULT sentinel is remapped to EMAIL. Runs at both ownership
// boundaries (event synthesis and store create) so direct administrative
// creation gets the same guarantees as the pipeline.
func (n *Notification) ApplyDefaults() {
	if n.Type == "" {
		if n.NotificationType != "" {
			n.Type = n.NotificationType
		} else {
			n.Type = ChannelEmail
		}
	}
	if n.NotificationType == "" {
		n.NotificationType = n.Type
	}
	if n.Type == ChannelDefault {
		n.Type = ChannelEmail
	}
	if n.NotificationType == ChannelDefault {
		n.NotificationType = ChannelEmail
	}

	if n.Status == "" {
		n.Status = DeliveryPending
	}

	if n.Recipient == "" {
		if n.UserID != nil {
			n.Recipient = RecipientFor(*n.UserID)
		} else {
			n.Recipient = "unknown@ebank.local"
		}
	}
}
