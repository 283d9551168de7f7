package entity

import "time"

// StatusLogEntry registro inmutable de una transición de estado (append-only).
type StatusLogEntry struct {
	ID        string
	InvoiceID string
	OldStatus InvoiceStatus
	NewStatus InvoiceStatus
	ChangedBy string
	Timestamp time.Time
}
