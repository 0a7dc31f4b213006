package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"focusboard/model"
)

const (
	tasksCollection    = "Tasks"
	timeLogsCollection = "TimeLogs"
)

// FirestoreStore persists tasks and time logs in Firestore, one
// document per record keyed by the record id.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) CreateTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) TaskByID(ctx context.Context, id string) (*model.Task, error) {
	doc, err := s.client.Collection(tasksCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var task model.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *FirestoreStore) TasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error) {
	query := s.client.Collection(tasksCollection).
		Where("ownerid", "==", ownerID).
		OrderBy("createdat", firestore.Desc)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	tasks := make([]*model.Task, 0, len(docs))
	for _, doc := range docs {
		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

func (s *FirestoreStore) UpdateTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.client.Collection(tasksCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) SweepTaskReferences(ctx context.Context, ownerID, taskID string) error {
	docs, err := s.client.Collection(tasksCollection).
		Where("ownerid", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return err
		}
		if !task.HasDependency(taskID) && task.ParentTask != taskID {
			continue
		}
		task.RemoveDependency(taskID)
		if task.ParentTask == taskID {
			task.ParentTask = ""
		}
		if _, err := doc.Ref.Set(ctx, &task); err != nil {
			return err
		}
	}
	return nil
}

// StartTimeLog runs deactivate-then-create in one transaction so two
// near-simultaneous starts cannot leave two active entries.
func (s *FirestoreStore) StartTimeLog(ctx context.Context, entry *model.TimeLog) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := s.client.Collection(timeLogsCollection).
			Where("ownerid", "==", entry.OwnerID).
			Where("isactive", "==", true)
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			var active model.TimeLog
			if err := doc.DataTo(&active); err != nil {
				return err
			}
			end := entry.StartTime
			active.EndTime = &end
			active.IsActive = false
			if err := tx.Set(doc.Ref, &active); err != nil {
				return err
			}
		}
		return tx.Set(s.client.Collection(timeLogsCollection).Doc(entry.LogID), entry)
	})
}

// StopTimeLog closes the entry and credits the task in one
// transaction; a failed credit rolls the close back too.
func (s *FirestoreStore) StopTimeLog(ctx context.Context, entry *model.TimeLog, snippet model.TimeSnippet) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		logRef := s.client.Collection(timeLogsCollection).Doc(entry.LogID)
		logDoc, err := tx.Get(logRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var stored model.TimeLog
		if err := logDoc.DataTo(&stored); err != nil {
			return err
		}
		if !stored.IsActive {
			return ErrAlreadyStopped
		}

		taskRef := s.client.Collection(tasksCollection).Doc(entry.TaskID)
		taskDoc, err := tx.Get(taskRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Set(logRef, entry); err != nil {
			return err
		}
		if taskDoc == nil || !taskDoc.Exists() {
			return nil
		}
		var task model.Task
		if err := taskDoc.DataTo(&task); err != nil {
			return err
		}
		task.TimeSpent += entry.Duration
		task.TimeLogs = append(task.TimeLogs, snippet)
		return tx.Set(taskRef, &task)
	})
}

func (s *FirestoreStore) TimeLogByID(ctx context.Context, id string) (*model.TimeLog, error) {
	doc, err := s.client.Collection(timeLogsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var entry model.TimeLog
	if err := doc.DataTo(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FirestoreStore) ActiveTimeLog(ctx context.Context, ownerID string) (*model.TimeLog, error) {
	docs, err := s.client.Collection(timeLogsCollection).
		Where("ownerid", "==", ownerID).
		Where("isactive", "==", true).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var entry model.TimeLog
	if err := docs[0].DataTo(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FirestoreStore) TimeLogsByTask(ctx context.Context, ownerID, taskID string) ([]*model.TimeLog, error) {
	query := s.client.Collection(timeLogsCollection).
		Where("ownerid", "==", ownerID).
		Where("taskid", "==", taskID).
		OrderBy("starttime", firestore.Desc)
	return s.timeLogQuery(ctx, query)
}

func (s *FirestoreStore) TimeLogsByOwner(ctx context.Context, ownerID string) ([]*model.TimeLog, error) {
	query := s.client.Collection(timeLogsCollection).
		Where("ownerid", "==", ownerID).
		OrderBy("starttime", firestore.Desc)
	return s.timeLogQuery(ctx, query)
}

func (s *FirestoreStore) timeLogQuery(ctx context.Context, query firestore.Query) ([]*model.TimeLog, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	logs := make([]*model.TimeLog, 0, len(docs))
	for _, doc := range docs {
		var entry model.TimeLog
		if err := doc.DataTo(&entry); err != nil {
			return nil, err
		}
		logs = append(logs, &entry)
	}
	return logs, nil
}
