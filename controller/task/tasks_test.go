package task_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/controller/task"
	"focusboard/model"
	"focusboard/repository"
	"focusboard/services"
)

func newTaskRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	router := gin.New()
	task.TaskController(router, store)
	return router, store
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := services.CreateAccessToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) model.Task {
	t.Helper()
	var got model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestCreateTaskDefaults(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "Write the report"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decodeTask(t, w)
	assert.NotEmpty(t, got.TaskID)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, model.StatusTodo, got.Status)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Nil(t, got.DueDate)
}

func TestCreateTaskValidation(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "x", "dueDate": "next tuesday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasksRequireAuth(t *testing.T) {
	router, _ := newTaskRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTasksOwnerScopedAndSorted(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	for _, title := range []string{"first", "second", "third"} {
		w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": title})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doJSON(t, router, http.MethodPost, "/api/tasks", bearer(t, "u2"), gin.H{"title": "not mine"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	// Newest first.
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "first", got[2].Title)
}

func TestGetTaskOwnership(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeTask(t, w)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.TaskID, auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong owner is not authorized, unknown id is not found.
	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.TaskID, bearer(t, "u2"), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/tasks/does-not-exist", auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTaskPartial(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{
		"title":       "Quarterly numbers",
		"description": "pull the spreadsheets",
		"dueDate":     "2026-04-01T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeTask(t, w)

	// A partial update touches only the fields it carries.
	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+created.TaskID, auth, gin.H{"status": model.StatusDone})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeTask(t, w)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, "Quarterly numbers", got.Title)
	assert.Equal(t, "pull the spreadsheets", got.Description)
	require.NotNil(t, got.DueDate)

	// done may go straight back to todo, no in-progress hop required.
	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+created.TaskID, auth, gin.H{"status": model.StatusTodo})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusTodo, decodeTask(t, w).Status)

	// Clearing the due date with an empty string.
	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+created.TaskID, auth, gin.H{"dueDate": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeTask(t, w).DueDate)
}

func TestUpdateTaskValidation(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeTask(t, w).TaskID

	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, auth, gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, auth, gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, auth, gin.H{"dueDate": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type dependenciesResponse struct {
	Task         model.Task   `json:"task"`
	Dependencies []model.Task `json:"dependencies"`
	ParentTask   *model.Task  `json:"parentTask"`
}

func TestGetTaskDependencies(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "dep"})
	require.Equal(t, http.StatusCreated, w.Code)
	dep := decodeTask(t, w)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "parent"})
	require.Equal(t, http.StatusCreated, w.Code)
	parent := decodeTask(t, w)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{
		"title":        "child",
		"dependencies": []string{dep.TaskID, "dangling-id"},
		"parentTask":   parent.TaskID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	child := decodeTask(t, w)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+child.TaskID+"/dependencies", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dependenciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	// The dangling id resolves to nothing instead of failing the read.
	require.Len(t, got.Dependencies, 1)
	assert.Equal(t, dep.TaskID, got.Dependencies[0].TaskID)
	require.NotNil(t, got.ParentTask)
	assert.Equal(t, parent.TaskID, got.ParentTask.TaskID)
}

func TestDeleteTaskLeavesDanglingReferencesByDefault(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "doomed"})
	require.Equal(t, http.StatusCreated, w.Code)
	doomed := decodeTask(t, w)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{
		"title":        "survivor",
		"dependencies": []string{doomed.TaskID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	survivor := decodeTask(t, w)

	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+doomed.TaskID, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The edge stays behind, but resolution tolerates it.
	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+survivor.TaskID, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{doomed.TaskID}, decodeTask(t, w).Dependencies)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+survivor.TaskID+"/dependencies", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dependenciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.Dependencies)
}

func TestDeleteTaskWithSweep(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "doomed"})
	require.Equal(t, http.StatusCreated, w.Code)
	doomed := decodeTask(t, w)

	w = doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{
		"title":        "survivor",
		"dependencies": []string{doomed.TaskID},
		"parentTask":   doomed.TaskID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	survivor := decodeTask(t, w)

	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+doomed.TaskID+"?sweep=true", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+survivor.TaskID, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeTask(t, w)
	assert.Empty(t, got.Dependencies)
	assert.Empty(t, got.ParentTask)
}

func TestAttachmentsMetadata(t *testing.T) {
	router, _ := newTaskRouter(t)
	auth := bearer(t, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", auth, gin.H{"title": "with files"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeTask(t, w).TaskID

	w = doJSON(t, router, http.MethodPost, "/api/tasks/"+id+"/attachments", auth, gin.H{
		"filename":     "report-v2.pdf",
		"originalName": "report.pdf",
		"mimeType":     "application/pdf",
		"size":         20480,
		"url":          "/uploads/report-v2.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+id, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeTask(t, w)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "report-v2.pdf", got.Attachments[0].Filename)
	assert.NotEmpty(t, got.Attachments[0].ID)

	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id+"/attachments/"+got.Attachments[0].ID, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+id, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeTask(t, w).Attachments)
}
