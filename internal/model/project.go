package model

// Project is a top-level grouping of tasks, usually one construction site
// or contract.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
