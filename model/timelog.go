package model

import (
	"time"
)

// TimeLog entry types.
const (
	LogTypeWork     = "work"
	LogTypeBreak    = "break"
	LogTypePomodoro = "pomodoro"
)

// TimeLog is a tracked work/break session. At most one entry per owner
// may have IsActive=true at any time. Closed entries are never deleted.
type TimeLog struct {
	LogID     string     `firestore:"logid,omitempty" json:"id"`
	OwnerID   string     `firestore:"ownerid,omitempty" json:"ownerId"`
	TaskID    string     `firestore:"taskid,omitempty" json:"taskId"`
	StartTime time.Time  `firestore:"starttime" json:"startTime"`
	EndTime   *time.Time `firestore:"endtime,omitempty" json:"endTime,omitempty"`
	Duration  int        `firestore:"duration" json:"duration"`
	Notes     string     `firestore:"notes,omitempty" json:"notes,omitempty"`
	Type      string     `firestore:"type,omitempty" json:"type"`
	IsActive  bool       `firestore:"isactive" json:"isActive"`
	CreatedAt time.Time  `firestore:"createdat,omitempty" json:"createdAt"`
}

func ValidLogType(t string) bool {
	switch t {
	case LogTypeWork, LogTypeBreak, LogTypePomodoro:
		return true
	default:
		return false
	}
}
