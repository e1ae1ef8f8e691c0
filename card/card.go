// Package card turns work items into display-ready cards.
package card

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"stride-client/domain"
)

// UnassignedInitials is shown in the avatar slot of unassigned items.
const UnassignedInitials = "?"

const shortIDLength = 8

// Style is the colour treatment of a badge. Colours are lipgloss-compatible
// hex strings.
type Style struct {
	Label      string
	Foreground string
	Background string
}

// DisplayCard is the presentation model of a single work item.
type DisplayCard struct {
	ID               string
	ShortID          string
	Title            string
	Description      string
	TypeLabel        string
	PriorityStyle    Style
	StatusStyle      Style
	StatusLabel      string
	Created          string
	Updated          string
	AssigneeName     string
	AssigneeInitials string
	CreatorName      string
}

// Options tunes presentation.
type Options struct {
	// Locale is a BCP 47 tag; unsupported or empty values use en-US.
	Locale string
	// Location converts timestamps before formatting; nil keeps them as decoded.
	Location *time.Location
}

// Present builds the display card of item. Unknown priorities use the LOW
// style and unknown statuses the BACKLOG style, so Present never fails.
func Present(item domain.WorkItem, priorityStyles map[domain.Priority]Style, statusStyles map[domain.Status]Style, opts Options) DisplayCard {
	layout := DateLayout(opts.Locale)
	dc := DisplayCard{
		ID:               item.ID,
		ShortID:          ShortID(item.ID),
		Title:            item.Title,
		TypeLabel:        labelize(string(item.Type)),
		PriorityStyle:    lookupPriority(priorityStyles, item.Priority),
		StatusStyle:      lookupStatus(statusStyles, item.Status),
		StatusLabel:      StatusLabel(item.Status),
		Created:          formatTime(item.CreatedAt, layout, opts.Location),
		Updated:          formatTime(item.UpdatedAt, layout, opts.Location),
		AssigneeInitials: UnassignedInitials,
		CreatorName:      item.Creator.FullName,
	}
	if item.Description != nil {
		dc.Description = *item.Description
	}
	if item.Assignee != nil {
		dc.AssigneeName = item.Assignee.FullName
		dc.AssigneeInitials = Initials(*item.Assignee)
	}
	return dc
}

func lookupPriority(styles map[domain.Priority]Style, p domain.Priority) Style {
	if s, ok := styles[p]; ok {
		return s
	}
	if s, ok := styles[domain.PriorityLow]; ok {
		return s
	}
	return defaultPriorityStyles[domain.PriorityLow]
}

func lookupStatus(styles map[domain.Status]Style, s domain.Status) Style {
	if st, ok := styles[s]; ok {
		return st
	}
	if st, ok := styles[domain.StatusBacklog]; ok {
		return st
	}
	return defaultStatusStyles[domain.StatusBacklog]
}

// Initials returns the upper-cased first letter of the person's name, or of
// the e-mail when the name is blank.
func Initials(p domain.Person) string {
	for _, candidate := range []string{p.FullName, p.Email} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(candidate)
		return string(unicode.ToUpper(r))
	}
	return UnassignedInitials
}

// ShortID returns the first eight characters of id, upper-cased.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) > shortIDLength {
		runes = runes[:shortIDLength]
	}
	return strings.ToUpper(string(runes))
}

// StatusLabel renders a status for humans, e.g. "IN PROGRESS".
func StatusLabel(s domain.Status) string {
	return labelize(string(s))
}

func labelize(v string) string {
	return strings.ReplaceAll(v, "_", " ")
}

func formatTime(ts domain.Timestamp, layout string, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	t := ts.Time
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
