package domain

import (
	"strings"
	"time"
)

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedByID *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryUpdate struct {
	Name        *string
	Description *string
}

func (c *Category) Apply(upd CategoryUpdate) {
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
}

func (c Category) IsOwnedBy(userID uint) bool {
	return c.CreatedByID != nil && *c.CreatedByID == userID
}

const (
	CategorySortName      = "name"
	CategorySortCreatedAt = "created_at"
)

// CategoryQuery lists categories. An unknown SortBy falls back to newest first;
// a known one sorts descending unless SortDirection is "asc".
type CategoryQuery struct {
	Search        string
	SortBy        string
	SortDirection string
	Page          Page
}

// OrderClause returns the SQL ORDER BY for the query.
func (q CategoryQuery) OrderClause() string {
	switch q.SortBy {
	case CategorySortName, CategorySortCreatedAt:
		if strings.EqualFold(q.SortDirection, "asc") {
			return q.SortBy + " ASC"
		}
		return q.SortBy + " DESC"
	default:
		return CategorySortCreatedAt + " DESC"
	}
}
