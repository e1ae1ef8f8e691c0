package domain

// Status is the workflow stage of a work item. Values outside Statuses can
// appear after decoding and are treated as unknown by consumers.
type Status string

const (
	StatusBacklog    Status = "BACKLOG"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every known status in board column order.
var Statuses = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}

// Known reports whether s is one of Statuses.
func (s Status) Known() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority ranks the urgency of a work item.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every known priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Known reports whether p is one of Priorities.
func (p Priority) Known() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Type classifies a work item.
type Type string

const (
	TypeTask Type = "TASK"
	TypeBug  Type = "BUG"
	TypeEpic Type = "EPIC"
)

// Types lists every known work item type.
var Types = []Type{TypeTask, TypeBug, TypeEpic}

// Known reports whether t is one of Types.
func (t Type) Known() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Person is the user summary embedded in work items.
type Person struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// WorkItem is a read-only snapshot of a project work item as returned by the backend.
type WorkItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Type        Type      `json:"type"`
	Position    float64   `json:"position"`
	Assignee    *Person   `json:"assignee,omitempty"`
	Creator     Person    `json:"creator"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}
