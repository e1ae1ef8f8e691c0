// Package render draws boards and listings for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stride-client/board"
	"stride-client/card"
	"stride-client/domain"
)

const defaultColumnWidth = 30

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	columnStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4B5563")).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	emptyStyle   = mutedStyle.Italic(true)
	listKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
)

// Options controls board rendering.
type Options struct {
	ColumnWidth    int
	PriorityStyles map[domain.Priority]card.Style
	StatusStyles   map[domain.Status]card.Style
	Card           card.Options
}

func (o Options) withDefaults() Options {
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = defaultColumnWidth
	}
	if o.PriorityStyles == nil {
		o.PriorityStyles = card.DefaultPriorityStyles()
	}
	if o.StatusStyles == nil {
		o.StatusStyles = card.DefaultStatusStyles()
	}
	return o
}

// Board renders the columns of b side by side.
func Board(b board.Board, opts Options) string {
	opts = opts.withDefaults()
	columns := make([]string, 0, len(b.Columns))
	for _, col := range b.Columns {
		columns = append(columns, renderColumn(col, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColumn(col board.Column, opts Options) string {
	statusStyle := opts.StatusStyles[col.Status]
	header := headerStyle.
		Foreground(lipgloss.Color(statusStyle.Foreground)).
		Render(fmt.Sprintf("%s (%d)", card.StatusLabel(col.Status), len(col.Items)))

	parts := []string{header}
	if len(col.Items) == 0 {
		parts = append(parts, emptyStyle.Render("no items"))
	}
	for _, item := range col.Items {
		dc := card.Present(item, opts.PriorityStyles, opts.StatusStyles, opts.Card)
		parts = append(parts, renderCard(dc))
	}
	return columnStyle.Width(opts.ColumnWidth).Render(strings.Join(parts, "\n\n"))
}

func renderCard(dc card.DisplayCard) string {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dc.PriorityStyle.Foreground)).
		Background(lipgloss.Color(dc.PriorityStyle.Background)).
		Padding(0, 1).
		Render(dc.PriorityStyle.Label)

	lines := []string{
		titleStyle.Render(dc.Title),
		badge + " " + mutedStyle.Render(dc.TypeLabel+" "+dc.ShortID),
	}
	meta := "[" + dc.AssigneeInitials + "]"
	if dc.Updated != "" {
		meta += " " + dc.Updated
	}
	lines = append(lines, mutedStyle.Render(meta))
	return strings.Join(lines, "\n")
}

// Workspaces renders one line per workspace.
func Workspaces(workspaces []domain.Workspace) string {
	if len(workspaces) == 0 {
		return emptyStyle.Render("no workspaces")
	}
	lines := make([]string, 0, len(workspaces))
	for _, ws := range workspaces {
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			listKeyStyle.Render(ws.ID),
			ws.Name,
			mutedStyle.Render(fmt.Sprintf("(%d members, %d projects)", ws.MemberCount, ws.ProjectCount)),
		))
	}
	return strings.Join(lines, "\n")
}

// Projects renders one line per project.
func Projects(projects []domain.Project) string {
	if len(projects) == 0 {
		return emptyStyle.Render("no projects")
	}
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		line := listKeyStyle.Render(p.ID) + "  " + p.Name
		if p.Key != "" {
			line += " " + mutedStyle.Render("["+p.Key+"]")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
