package api

const (
	routeLogin      = "/auth/login"
	routeRegister   = "/auth/register"
	routeCheck      = "/auth/check"
	routeWorkspaces = "/workspaces"
	routeWorkspace  = "/workspaces/{workspaceId}"
	routeProjects   = "/workspaces/{workspaceId}/projects"
	routeProject    = "/workspaces/{workspaceId}/projects/{projectId}"
	routeWorkItems  = "/projects/{workspaceId}/{projectId}/work-items"
)

const maxResponseSize = 8 << 20 // 8 MiB

const headerRequestID = "X-Request-ID"

// POST /auth/register request body
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// error body returned by the backend on non-2xx responses
type errorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
