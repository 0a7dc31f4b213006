package model

import (
	"time"
)

// Notification bucket types, in rank order.
const (
	NotifyOverdue  = "overdue"
	NotifyToday    = "today"
	NotifyUpcoming = "upcoming"
)

// Notification is a derived view object recomputed on demand from the
// current task set. It is never persisted.
type Notification struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Date         time.Time `json:"date"`
	TargetTaskID string    `json:"targetTaskId"`
}

// NotifyRank orders buckets overdue < today < upcoming. Unknown types
// sort last.
func NotifyRank(t string) int {
	switch t {
	case NotifyOverdue:
		return 0
	case NotifyToday:
		return 1
	case NotifyUpcoming:
		return 2
	default:
		return 99
	}
}
