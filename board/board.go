// Package board groups work items into the fixed workflow columns.
package board

import (
	"sort"
	"strings"

	"stride-client/domain"
)

// Column holds the items of one status, ordered by position.
type Column struct {
	Status domain.Status
	Items  []domain.WorkItem
}

// Board is the column-partitioned view of a project. Columns always follow
// domain.Statuses order, empty columns included.
type Board struct {
	Columns []Column
}

// Column returns the items of status, or nil for an unknown status.
func (b Board) Column(status domain.Status) []domain.WorkItem {
	for _, col := range b.Columns {
		if col.Status == status {
			return col.Items
		}
	}
	return nil
}

// Count returns the number of items across all columns.
func (b Board) Count() int {
	total := 0
	for _, col := range b.Columns {
		total += len(col.Items)
	}
	return total
}

// Counts returns the number of items per status.
func (b Board) Counts() map[domain.Status]int {
	counts := make(map[domain.Status]int, len(b.Columns))
	for _, col := range b.Columns {
		counts[col.Status] = len(col.Items)
	}
	return counts
}

// Aggregate filters items by query and partitions them into columns.
//
// An item is kept when the trimmed query is empty or is a case-insensitive
// substring of its title or description. Items with an unknown status are
// dropped. Each column is stably sorted by position. items is not modified.
func Aggregate(items []domain.WorkItem, query string) Board {
	columns := make([]Column, len(domain.Statuses))
	index := make(map[domain.Status]int, len(domain.Statuses))
	for i, status := range domain.Statuses {
		columns[i] = Column{Status: status, Items: []domain.WorkItem{}}
		index[status] = i
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	for _, item := range items {
		i, ok := index[item.Status]
		if !ok {
			continue
		}
		if !Matches(item, needle) {
			continue
		}
		columns[i].Items = append(columns[i].Items, item)
	}

	for i := range columns {
		col := columns[i].Items
		sort.SliceStable(col, func(a, b int) bool {
			return col[a].Position < col[b].Position
		})
	}
	return Board{Columns: columns}
}

// Matches reports whether item passes the lower-cased query. An empty query
// matches everything.
func Matches(item domain.WorkItem, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), lowerQuery) {
		return true
	}
	return item.Description != nil && strings.Contains(strings.ToLower(*item.Description), lowerQuery)
}
