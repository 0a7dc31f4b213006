package ai_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/controller/ai"
	"focusboard/model"
	"focusboard/repository"
	"focusboard/services"
)

func newAIRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("OPENAI_API_KEY", "")
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	router := gin.New()
	ai.AIController(router, store)
	return router, store
}

func postBreakdown(t *testing.T, router *gin.Engine, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	token, err := services.CreateAccessToken(userID)
	require.NoError(t, err)
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/ai/breakdown", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBreakdownDegradedUpstreamStillSucceeds(t *testing.T) {
	router, _ := newAIRouter(t)

	w := postBreakdown(t, router, "u1", gin.H{"title": "Plan the offsite"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got model.AIMeta
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *services.FallbackBreakdown(), got)
}

func TestBreakdownRequiresTitle(t *testing.T) {
	router, _ := newAIRouter(t)
	w := postBreakdown(t, router, "u1", gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBreakdownStoresMetaOnOwnedTask(t *testing.T) {
	router, store := newAIRouter(t)
	ctx := context.Background()
	require.NoError(t, store.CreateTask(ctx, &model.Task{TaskID: "a", OwnerID: "u1", Title: "mine"}))
	require.NoError(t, store.CreateTask(ctx, &model.Task{TaskID: "b", OwnerID: "u2", Title: "theirs"}))

	w := postBreakdown(t, router, "u1", gin.H{"taskId": "a", "title": "mine"})
	require.Equal(t, http.StatusOK, w.Code)

	task, err := store.TaskByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, task.AIMeta)
	assert.Equal(t, services.FallbackBreakdown(), task.AIMeta)

	// A foreign task id is silently ignored; the breakdown still comes
	// back to the caller.
	w = postBreakdown(t, router, "u1", gin.H{"taskId": "b", "title": "theirs"})
	require.Equal(t, http.StatusOK, w.Code)
	theirs, err := store.TaskByID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, theirs.AIMeta)
}
