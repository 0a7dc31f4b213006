package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/model"
	"focusboard/repository"
)

func TestMemoryStoreTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	_, err := store.TaskByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.DeleteTask(ctx, "missing"), repository.ErrNotFound)
	assert.ErrorIs(t, store.UpdateTask(ctx, &model.Task{TaskID: "missing"}), repository.ErrNotFound)

	task := &model.Task{TaskID: "a", OwnerID: "u1", Title: "first", CreatedAt: time.Now()}
	require.NoError(t, store.CreateTask(ctx, task))

	got, err := store.TaskByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// Reads are isolated copies; mutating one must not leak into the
	// store.
	got.Title = "mutated"
	got.Tags = append(got.Tags, "leak")
	again, err := store.TaskByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)
	assert.Empty(t, again.Tags)

	require.NoError(t, store.DeleteTask(ctx, "a"))
	_, err = store.TaskByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryStoreTasksByOwnerSortedByCreationDesc(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateTask(ctx, &model.Task{TaskID: "old", OwnerID: "u1", CreatedAt: base}))
	require.NoError(t, store.CreateTask(ctx, &model.Task{TaskID: "new", OwnerID: "u1", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.CreateTask(ctx, &model.Task{TaskID: "other", OwnerID: "u2", CreatedAt: base.Add(2 * time.Hour)}))

	tasks, err := store.TasksByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "new", tasks[0].TaskID)
	assert.Equal(t, "old", tasks[1].TaskID)
}

func TestMemoryStoreSweepTaskReferences(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	require.NoError(t, store.CreateTask(ctx, &model.Task{
		TaskID: "child", OwnerID: "u1",
		Dependencies: []string{"gone", "kept"},
		ParentTask:   "gone",
	}))
	require.NoError(t, store.CreateTask(ctx, &model.Task{
		TaskID: "foreign", OwnerID: "u2",
		Dependencies: []string{"gone"},
	}))

	require.NoError(t, store.SweepTaskReferences(ctx, "u1", "gone"))

	child, err := store.TaskByID(ctx, "child")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, child.Dependencies)
	assert.Empty(t, child.ParentTask)

	// The sweep is owner-scoped; another owner's references stay put.
	foreign, err := store.TaskByID(ctx, "foreign")
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, foreign.Dependencies)
}

func TestMemoryStoreTimeLogQueries(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"l1", "l2", "l3"} {
		entry := &model.TimeLog{
			LogID:     id,
			OwnerID:   "u1",
			TaskID:    "a",
			StartTime: base.Add(time.Duration(i) * time.Hour),
			Type:      model.LogTypeWork,
			IsActive:  true,
		}
		require.NoError(t, store.StartTimeLog(ctx, entry))
	}

	logs, err := store.TimeLogsByTask(ctx, "u1", "a")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "l3", logs[0].LogID)
	assert.Equal(t, "l1", logs[2].LogID)

	active, err := store.ActiveTimeLog(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "l3", active.LogID)

	none, err := store.ActiveTimeLog(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemoryStoreStopTimeLogGuards(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	err := store.StopTimeLog(ctx, &model.TimeLog{LogID: "missing"}, model.TimeSnippet{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entry := &model.TimeLog{LogID: "l1", OwnerID: "u1", TaskID: "a", StartTime: start, IsActive: true}
	require.NoError(t, store.StartTimeLog(ctx, entry))

	end := start.Add(10 * time.Minute)
	closed := *entry
	closed.EndTime = &end
	closed.Duration = 10
	closed.IsActive = false

	// Crediting a since-deleted task is tolerated.
	require.NoError(t, store.StopTimeLog(ctx, &closed, model.TimeSnippet{StartTime: start, EndTime: end, Duration: 10}))

	err = store.StopTimeLog(ctx, &closed, model.TimeSnippet{})
	assert.ErrorIs(t, err, repository.ErrAlreadyStopped)
}
