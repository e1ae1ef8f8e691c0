package domain

// Workspace groups projects and their members.
type Workspace struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	MemberCount  int    `json:"memberCount"`
	ProjectCount int    `json:"projectCount"`
}

// Project scopes a set of work items inside a workspace.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
	WorkspaceID string `json:"workspaceId,omitempty"`
}

// ProjectRef identifies the project a board is loaded for.
type ProjectRef struct {
	WorkspaceID string
	ProjectID   string
}
