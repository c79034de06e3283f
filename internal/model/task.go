package model

// Task is a trackable unit of work within a Project
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
}

// InProject returns true if the task belongs to projectID.
// An empty projectID matches every task.
func (t *Task) InProject(projectID string) bool {
	return projectID == "" || t.ProjectID == projectID
}
