package models

import (
	// Go Internal Packages
	"encoding/json"
)

// Transaction lifecycle statuses carried on the event. Only Completed
// triggers a notification; everything else is filtered.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// TransactionEvent is the wire schema of the transaction-events topic.
// Field names are camelCase to stay compatible with the legacy producers;
// unknown fields are tolerated and dropped on decode.
type TransactionEvent struct {
	TransactionID   string      `json:"transactionId"`
	TransactionType string      `json:"transactionType,omitempty"`
	Amount          json.Number `json:"amount,omitempty"`
	Currency        string      `json:"currency,omitempty"`
	Status          string      `json:"status,omitempty"`
	UserID          *int64      `json:"userId,omitempty"`
	Description     string      `json:"description,omitempty"`
}

// TypeOrUnknown returns the transaction type for rendering, "Unknown"
// when the producer left it out.
func (e *TransactionEvent) TypeOrUnknown() string {
	if e.TransactionType == "" {
		return "Unknown"
	}
	return e.TransactionType
}
