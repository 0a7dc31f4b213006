package model

import (
	"time"
)

// Task status values. Any status may move directly to any other,
// the board columns are not a sequential pipeline.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Subtask struct {
	Title     string `firestore:"title" json:"title"`
	Completed bool   `firestore:"completed" json:"completed"`
	Order     int    `firestore:"order" json:"order"`
}

// Attachment holds file metadata only. Binary storage is external.
type Attachment struct {
	ID           string    `firestore:"id,omitempty" json:"id"`
	Filename     string    `firestore:"filename,omitempty" json:"filename"`
	OriginalName string    `firestore:"originalname,omitempty" json:"originalName"`
	MimeType     string    `firestore:"mimetype,omitempty" json:"mimeType"`
	Size         int64     `firestore:"size,omitempty" json:"size"`
	URL          string    `firestore:"url,omitempty" json:"url"`
	UploadedAt   time.Time `firestore:"uploadedat,omitempty" json:"uploadedAt"`
}

// TimeSnippet is a completed tracking session denormalized onto the
// task for fast history reads. The live entries stay in TimeLogs.
type TimeSnippet struct {
	StartTime time.Time `firestore:"starttime" json:"startTime"`
	EndTime   time.Time `firestore:"endtime" json:"endTime"`
	Duration  int       `firestore:"duration" json:"duration"`
	Notes     string    `firestore:"notes,omitempty" json:"notes,omitempty"`
}

type AIStep struct {
	Step          string `firestore:"step" json:"step"`
	EstimateHours string `firestore:"estimatehours" json:"estimateHours"`
	Difficulty    string `firestore:"difficulty" json:"difficulty"`
}

// AIMeta is the assistant's breakdown, stored verbatim. Its content is
// never validated beyond JSON shape.
type AIMeta struct {
	Steps                []AIStep `firestore:"steps" json:"steps"`
	OverallEstimateHours float64  `firestore:"overallestimatehours" json:"overallEstimateHours"`
	SuggestedPriority    string   `firestore:"suggestedpriority" json:"suggestedPriority"`
}

type Task struct {
	TaskID        string        `firestore:"taskid,omitempty" json:"id"`
	OwnerID       string        `firestore:"ownerid,omitempty" json:"ownerId"`
	ProjectID     string        `firestore:"projectid,omitempty" json:"projectId,omitempty"`
	Title         string        `firestore:"title,omitempty" json:"title"`
	Description   string        `firestore:"description,omitempty" json:"description,omitempty"`
	Status        string        `firestore:"status,omitempty" json:"status"`
	Priority      string        `firestore:"priority,omitempty" json:"priority"`
	DueDate       *time.Time    `firestore:"duedate,omitempty" json:"dueDate,omitempty"`
	Tags          []string      `firestore:"tags,omitempty" json:"tags"`
	Subtasks      []Subtask     `firestore:"subtasks,omitempty" json:"subtasks"`
	ParentTask    string        `firestore:"parenttask,omitempty" json:"parentTask,omitempty"`
	Dependencies  []string      `firestore:"dependencies,omitempty" json:"dependencies"`
	Attachments   []Attachment  `firestore:"attachments,omitempty" json:"attachments"`
	EstimatedTime int           `firestore:"estimatedtime,omitempty" json:"estimatedTime"`
	TimeSpent     int           `firestore:"timespent,omitempty" json:"timeSpent"`
	TimeLogs      []TimeSnippet `firestore:"timelogs,omitempty" json:"timeLogs"`
	AIMeta        *AIMeta       `firestore:"aimeta,omitempty" json:"aiMeta,omitempty"`
	CreatedAt     time.Time     `firestore:"createdat,omitempty" json:"createdAt"`
	UpdatedAt     time.Time     `firestore:"updatedat,omitempty" json:"updatedAt"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ProgressRatio returns the completed fraction of subtasks in [0,1].
// A task with no subtasks reports 0.
func (t *Task) ProgressRatio() float64 {
	if len(t.Subtasks) == 0 {
		return 0
	}
	completed := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(t.Subtasks))
}

// IsOverdue reports whether the task's due date has passed while the
// task is still not done. Tasks without a due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusDone || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// AddDependency appends dependsOnID if absent. The registry is
// deliberately permissive: no existence, self-reference, or cycle
// checks here; completion ordering is left to callers.
func (t *Task) AddDependency(dependsOnID string) {
	for _, id := range t.Dependencies {
		if id == dependsOnID {
			return
		}
	}
	t.Dependencies = append(t.Dependencies, dependsOnID)
}

// RemoveDependency is idempotent.
func (t *Task) RemoveDependency(dependsOnID string) {
	out := t.Dependencies[:0]
	for _, id := range t.Dependencies {
		if id != dependsOnID {
			out = append(out, id)
		}
	}
	t.Dependencies = out
}

func (t *Task) HasDependency(dependsOnID string) bool {
	for _, id := range t.Dependencies {
		if id == dependsOnID {
			return true
		}
	}
	return false
}
