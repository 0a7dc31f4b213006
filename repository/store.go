package repository

import (
	"context"
	"errors"

	"focusboard/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyStopped = errors.New("time log already stopped")
)

// Store is the persistence boundary for tasks and time logs. All
// records are owner-scoped; lookups by id return the record regardless
// of owner so callers can distinguish "unknown id" from "wrong owner".
type Store interface {
	CreateTask(ctx context.Context, task *model.Task) error
	TaskByID(ctx context.Context, id string) (*model.Task, error)
	// TasksByOwner returns the owner's tasks sorted by creation time
	// descending.
	TasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error
	// SweepTaskReferences removes taskID from the dependencies and
	// parentTask fields of the owner's remaining tasks. Deletion does
	// not run this by default; dangling references are tolerated by
	// all readers.
	SweepTaskReferences(ctx context.Context, ownerID, taskID string) error

	// StartTimeLog deactivates any active entry for entry.OwnerID and
	// inserts the new entry as one atomic unit. Interrupted entries get
	// their endTime set but are never credited to a task.
	StartTimeLog(ctx context.Context, entry *model.TimeLog) error
	// StopTimeLog persists the closed entry and credits its duration to
	// the task (timeSpent increment plus history snippet) atomically.
	// Returns ErrAlreadyStopped if the stored entry is no longer
	// active. A since-deleted task absorbs no credit.
	StopTimeLog(ctx context.Context, entry *model.TimeLog, snippet model.TimeSnippet) error
	TimeLogByID(ctx context.Context, id string) (*model.TimeLog, error)
	// ActiveTimeLog returns the owner's single active entry, or nil
	// when the owner is idle.
	ActiveTimeLog(ctx context.Context, ownerID string) (*model.TimeLog, error)
	// TimeLogsByTask returns the owner's entries for one task sorted by
	// start time descending.
	TimeLogsByTask(ctx context.Context, ownerID, taskID string) ([]*model.TimeLog, error)
	TimeLogsByOwner(ctx context.Context, ownerID string) ([]*model.TimeLog, error)
}
