package dto

type StartTimeLogRequest struct {
	TaskID string `json:"taskId" binding:"required"`
	Type   string `json:"type"`
}
