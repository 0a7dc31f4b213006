package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"focusboard/model"
)

const (
	defaultAIBaseURL = "https://api.openai.com/v1"
	aiModel          = "gpt-3.5-turbo"
	aiSystemMessage  = "You are a project manager assistant."
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// FallbackBreakdown is the deterministic breakdown used whenever the
// assistant is unreachable or returns something unusable. Task
// mutations must never fail because the assistant did.
func FallbackBreakdown() *model.AIMeta {
	return &model.AIMeta{
		Steps: []model.AIStep{
			{Step: "Plan and analyze requirements", EstimateHours: "2", Difficulty: "medium"},
			{Step: "Design the solution", EstimateHours: "3", Difficulty: "medium"},
			{Step: "Implement the solution", EstimateHours: "5", Difficulty: "high"},
			{Step: "Test and verify", EstimateHours: "2", Difficulty: "medium"},
		},
		OverallEstimateHours: 12,
		SuggestedPriority:    model.PriorityHigh,
	}
}

// BreakdownTask asks the assistant collaborator to split a task into
// steps. It always returns a usable breakdown: any upstream failure
// (missing key, transport error, malformed body) degrades to
// FallbackBreakdown.
func BreakdownTask(ctx context.Context, httpClient *http.Client, task *model.Task) *model.AIMeta {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if !strings.HasPrefix(apiKey, "sk-") {
		return FallbackBreakdown()
	}

	meta, err := requestBreakdown(ctx, httpClient, apiKey, task)
	if err != nil {
		log.Printf("ai breakdown degraded, using fallback: %v", err)
		return FallbackBreakdown()
	}
	return meta
}

func requestBreakdown(ctx context.Context, httpClient *http.Client, apiKey string, task *model.Task) (*model.AIMeta, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultAIBaseURL
	}

	body, err := json.Marshal(chatRequest{
		Model: aiModel,
		Messages: []chatMessage{
			{Role: "system", Content: aiSystemMessage},
			{Role: "user", Content: breakdownPrompt(task)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("assistant returned %d: %s", resp.StatusCode, data)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, err
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("assistant returned no choices")
	}

	var meta model.AIMeta
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &meta); err != nil {
		return nil, fmt.Errorf("assistant content is not valid JSON: %w", err)
	}
	if len(meta.Steps) == 0 {
		return nil, fmt.Errorf("assistant breakdown has no steps")
	}
	return &meta, nil
}

func breakdownPrompt(task *model.Task) string {
	description := task.Description
	if description == "" {
		description = "No description provided"
	}
	dueDate := "No due date"
	if task.DueDate != nil && !task.DueDate.IsZero() {
		dueDate = task.DueDate.Format(time.RFC3339)
	}
	tags := "None"
	if len(task.Tags) > 0 {
		tags = strings.Join(task.Tags, ", ")
	}
	return fmt.Sprintf(`Break the following task into ordered actionable steps, estimate time in hours for each step (low/medium/high difficulty), and suggest priority.

Task title: %q
Description: %q
Due date: %q
Tags: %q

Return JSON with: steps: [{step, estimateHours, difficulty}], overallEstimateHours, suggestedPriority`,
		task.Title, description, dueDate, tags)
}
