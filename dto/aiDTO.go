package dto

// BreakdownRequest asks the assistant collaborator to split a task
// into steps. TaskID is optional; when set, the resulting breakdown is
// stored verbatim on that task's aiMeta.
type BreakdownRequest struct {
	TaskID      string   `json:"taskId"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Tags        []string `json:"tags"`
}
