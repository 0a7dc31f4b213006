package repository

import (
	"context"
	"sort"
	"sync"

	"focusboard/model"
)

// MemoryStore keeps everything in process memory behind one mutex. It
// backs the test suite and `serve` runs without Firestore credentials.
// The single lock makes deactivate-then-create and stop-and-credit
// atomic the same way the Firestore transactions do.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
	logs  map[string]*model.TimeLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*model.Task),
		logs:  make(map[string]*model.TimeLog),
	}
}

func cloneTask(t *model.Task) *model.Task {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.Subtasks = append([]model.Subtask(nil), t.Subtasks...)
	c.Dependencies = append([]string(nil), t.Dependencies...)
	c.Attachments = append([]model.Attachment(nil), t.Attachments...)
	c.TimeLogs = append([]model.TimeSnippet(nil), t.TimeLogs...)
	if t.AIMeta != nil {
		m := *t.AIMeta
		m.Steps = append([]model.AIStep(nil), t.AIMeta.Steps...)
		c.AIMeta = &m
	}
	return &c
}

func cloneLog(l *model.TimeLog) *model.TimeLog {
	c := *l
	if l.EndTime != nil {
		end := *l.EndTime
		c.EndTime = &end
	}
	return &c
}

func (s *MemoryStore) CreateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *MemoryStore) TaskByID(_ context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) TasksByOwner(_ context.Context, ownerID string) ([]*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Task
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].TaskID < out[j].TaskID
	})
	return out, nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.TaskID]; !ok {
		return ErrNotFound
	}
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) SweepTaskReferences(_ context.Context, ownerID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		t.RemoveDependency(taskID)
		if t.ParentTask == taskID {
			t.ParentTask = ""
		}
	}
	return nil
}

func (s *MemoryStore) StartTimeLog(_ context.Context, entry *model.TimeLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.OwnerID == entry.OwnerID && l.IsActive {
			end := entry.StartTime
			l.EndTime = &end
			l.IsActive = false
		}
	}
	s.logs[entry.LogID] = cloneLog(entry)
	return nil
}

func (s *MemoryStore) StopTimeLog(_ context.Context, entry *model.TimeLog, snippet model.TimeSnippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.logs[entry.LogID]
	if !ok {
		return ErrNotFound
	}
	if !stored.IsActive {
		return ErrAlreadyStopped
	}
	s.logs[entry.LogID] = cloneLog(entry)
	if task, ok := s.tasks[entry.TaskID]; ok {
		task.TimeSpent += entry.Duration
		task.TimeLogs = append(task.TimeLogs, snippet)
	}
	return nil
}

func (s *MemoryStore) TimeLogByID(_ context.Context, id string) (*model.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.logs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneLog(l), nil
}

func (s *MemoryStore) ActiveTimeLog(_ context.Context, ownerID string) (*model.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.OwnerID == ownerID && l.IsActive {
			return cloneLog(l), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) TimeLogsByTask(_ context.Context, ownerID, taskID string) ([]*model.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TimeLog
	for _, l := range s.logs {
		if l.OwnerID == ownerID && l.TaskID == taskID {
			out = append(out, cloneLog(l))
		}
	}
	sortLogsByStartDesc(out)
	return out, nil
}

func (s *MemoryStore) TimeLogsByOwner(_ context.Context, ownerID string) ([]*model.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TimeLog
	for _, l := range s.logs {
		if l.OwnerID == ownerID {
			out = append(out, cloneLog(l))
		}
	}
	sortLogsByStartDesc(out)
	return out, nil
}

func sortLogsByStartDesc(logs []*model.TimeLog) {
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].StartTime.Equal(logs[j].StartTime) {
			return logs[i].StartTime.After(logs[j].StartTime)
		}
		return logs[i].LogID < logs[j].LogID
	})
}
