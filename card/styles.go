package card

import "stride-client/domain"

var defaultPriorityStyles = map[domain.Priority]Style{
	domain.PriorityUrgent: {Label: "URGENT", Foreground: "#B91C1C", Background: "#FEE2E2"},
	domain.PriorityHigh:   {Label: "HIGH", Foreground: "#C2410C", Background: "#FFEDD5"},
	domain.PriorityMedium: {Label: "MEDIUM", Foreground: "#1D4ED8", Background: "#DBEAFE"},
	domain.PriorityLow:    {Label: "LOW", Foreground: "#334155", Background: "#F1F5F9"},
}

var defaultStatusStyles = map[domain.Status]Style{
	domain.StatusDone:       {Label: "DONE", Foreground: "#15803D", Background: "#DCFCE7"},
	domain.StatusInProgress: {Label: "IN PROGRESS", Foreground: "#1D4ED8", Background: "#DBEAFE"},
	domain.StatusTodo:       {Label: "TODO", Foreground: "#B45309", Background: "#FEF3C7"},
	domain.StatusBacklog:    {Label: "BACKLOG", Foreground: "#374151", Background: "#F3F4F6"},
}

// DefaultPriorityStyles returns a copy of the built-in priority badge styles.
func DefaultPriorityStyles() map[domain.Priority]Style {
	out := make(map[domain.Priority]Style, len(defaultPriorityStyles))
	for k, v := range defaultPriorityStyles {
		out[k] = v
	}
	return out
}

// DefaultStatusStyles returns a copy of the built-in status badge styles.
func DefaultStatusStyles() map[domain.Status]Style {
	out := make(map[domain.Status]Style, len(defaultStatusStyles))
	for k, v := range defaultStatusStyles {
		out[k] = v
	}
	return out
}
