package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stride-client/domain"
)

// CheckSession asks the backend whether the stored token is still accepted.
func (c *Client) CheckSession(ctx context.Context) error {
	var valid bool
	if err := c.do(ctx, http.MethodGet, routeCheck, routeCheck, nil, &valid); err != nil {
		return err
	}
	if !valid {
		_ = c.session.Logout(context.WithoutCancel(ctx))
		return ErrSessionExpired
	}
	return nil
}

// ListWorkspaces returns the workspaces the current user is a member of.
func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	workspaces := []domain.Workspace{}
	if err := c.do(ctx, http.MethodGet, routeWorkspaces, routeWorkspaces, nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// GetWorkspace returns a single workspace.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (domain.Workspace, error) {
	id, err := pathParam("workspace id", workspaceID)
	if err != nil {
		return domain.Workspace{}, err
	}
	var ws domain.Workspace
	if err := c.do(ctx, http.MethodGet, routeWorkspace, "/workspaces/"+id, nil, &ws); err != nil {
		return domain.Workspace{}, err
	}
	return ws, nil
}

// ListProjects returns the projects of a workspace.
func (c *Client) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	id, err := pathParam("workspace id", workspaceID)
	if err != nil {
		return nil, err
	}
	projects := []domain.Project{}
	if err := c.do(ctx, http.MethodGet, routeProjects, "/workspaces/"+id+"/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project of a workspace.
func (c *Client) GetProject(ctx context.Context, ref domain.ProjectRef) (domain.Project, error) {
	wsID, projectID, err := refParams(ref)
	if err != nil {
		return domain.Project{}, err
	}
	var project domain.Project
	resource := "/workspaces/" + wsID + "/projects/" + projectID
	if err := c.do(ctx, http.MethodGet, routeProject, resource, nil, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// ListWorkItems returns the work items of a project.
func (c *Client) ListWorkItems(ctx context.Context, ref domain.ProjectRef) ([]domain.WorkItem, error) {
	wsID, projectID, err := refParams(ref)
	if err != nil {
		return nil, err
	}
	items := []domain.WorkItem{}
	resource := "/projects/" + wsID + "/" + projectID + "/work-items"
	if err := c.do(ctx, http.MethodGet, routeWorkItems, resource, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func refParams(ref domain.ProjectRef) (string, string, error) {
	wsID, err := pathParam("workspace id", ref.WorkspaceID)
	if err != nil {
		return "", "", err
	}
	projectID, err := pathParam("project id", ref.ProjectID)
	if err != nil {
		return "", "", err
	}
	return wsID, projectID, nil
}

func pathParam(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return url.PathEscape(value), nil
}
