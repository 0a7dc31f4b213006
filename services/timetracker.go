package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"focusboard/model"
	"focusboard/repository"
)

// StartTimer opens a new tracking session for the owner. Any entry
// still active for the owner is deactivated first, without crediting
// its partial duration anywhere: an interrupted session was not
// completed, so its time is dropped from accounting.
func StartTimer(ctx context.Context, store repository.Store, ownerID, taskID, logType string, now time.Time) (*model.TimeLog, error) {
	if logType == "" {
		logType = model.LogTypeWork
	}
	if !model.ValidLogType(logType) {
		return nil, ErrInvalidLogType
	}

	entry := &model.TimeLog{
		LogID:     uuid.New().String(),
		OwnerID:   ownerID,
		TaskID:    taskID,
		StartTime: now,
		Type:      logType,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := store.StartTimeLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// StopTimer closes the entry and credits its duration to the task.
// This is the only path that adds to task.timeSpent. Stopping an
// already-closed entry returns repository.ErrAlreadyStopped so time is
// never credited twice.
func StopTimer(ctx context.Context, store repository.Store, ownerID, logID string, now time.Time) (*model.TimeLog, error) {
	entry, err := store.TimeLogByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if entry.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if !entry.IsActive {
		return nil, repository.ErrAlreadyStopped
	}

	duration := int(math.Round(now.Sub(entry.StartTime).Minutes()))
	entry.EndTime = &now
	entry.Duration = duration
	entry.IsActive = false

	snippet := model.TimeSnippet{
		StartTime: entry.StartTime,
		EndTime:   now,
		Duration:  duration,
	}
	if err := store.StopTimeLog(ctx, entry, snippet); err != nil {
		return nil, err
	}
	return entry, nil
}
