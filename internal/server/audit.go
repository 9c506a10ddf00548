package server

import (
	"time"
)

// AuditLogEntry is one API request as published to the audit topic.
type AuditLogEntry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	UserID     int64     `json:"user_id,omitempty"`
	UserType   string    `json:"user_type,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
