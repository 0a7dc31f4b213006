package dto

import (
	"focusboard/model"
)

type CreateTaskRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	DueDate       string          `json:"dueDate"`
	Tags          []string        `json:"tags"`
	Subtasks      []model.Subtask `json:"subtasks"`
	ParentTask    string          `json:"parentTask"`
	Dependencies  []string        `json:"dependencies"`
	EstimatedTime int             `json:"estimatedTime"`
	ProjectID     string          `json:"projectId"`
}

// UpdateTaskRequest carries field-level partial updates: a nil field
// leaves the stored value untouched, so concurrent editors only
// overwrite the fields they actually send. timeSpent is absent on
// purpose, only a timer stop may change it.
type UpdateTaskRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Status        *string          `json:"status"`
	Priority      *string          `json:"priority"`
	DueDate       *string          `json:"dueDate"`
	Tags          *[]string        `json:"tags"`
	Subtasks      *[]model.Subtask `json:"subtasks"`
	ParentTask    *string          `json:"parentTask"`
	Dependencies  *[]string        `json:"dependencies"`
	EstimatedTime *int             `json:"estimatedTime"`
	ProjectID     *string          `json:"projectId"`
}

// AddAttachmentRequest carries attachment metadata only; the bytes
// live in external storage and never pass through this API.
type AddAttachmentRequest struct {
	Filename     string `json:"filename" binding:"required"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}
