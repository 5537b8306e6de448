package domain

import (
	"strings"
	"time"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

const (
	MinEventCapacity = 1
	MaxEventCapacity = 10000
)

func IsValidEventStatus(status string) bool {
	switch status {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}

	return false
}

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	OrganizerID uint      `json:"organizer"`
	CategoryID  *uint     `json:"category"`
	Location    string    `json:"location"`
	Venue       string    `json:"venue"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsVisibleTo reports whether userID may see the event. Zero is the anonymous user.
func (e Event) IsVisibleTo(userID uint) bool {
	return !e.IsPrivate || (userID != 0 && e.OrganizerID == userID)
}

func (e Event) IsOrganizedBy(userID uint) bool {
	return e.OrganizerID == userID
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title         *string
	Description   *string
	CategoryID    *uint
	ClearCategory bool
	Location      *string
	Venue         *string
	StartDate     *time.Time
	EndDate       *time.Time
	Capacity      *int
	Price         *float64
	Status        *string
	IsPrivate     *bool
}

func (e *Event) Apply(upd EventUpdate) {
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.ClearCategory {
		e.CategoryID = nil
	} else if upd.CategoryID != nil {
		e.CategoryID = upd.CategoryID
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Venue != nil {
		e.Venue = *upd.Venue
	}
	if upd.StartDate != nil {
		e.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		e.EndDate = *upd.EndDate
	}
	if upd.Capacity != nil {
		e.Capacity = *upd.Capacity
	}
	if upd.Price != nil {
		e.Price = *upd.Price
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.IsPrivate != nil {
		e.IsPrivate = *upd.IsPrivate
	}
}

const DefaultEventOrder = "-start_date"

var eventOrderFields = map[string]struct{}{
	"start_date": {},
	"end_date":   {},
	"price":      {},
	"title":      {},
	"created_at": {},
	"capacity":   {},
}

// ParseEventOrder splits an order-by value such as "-price" into its field and direction.
// An empty value yields the default order.
func ParseEventOrder(orderBy string) (field string, desc bool, ok bool) {
	if orderBy == "" {
		orderBy = DefaultEventOrder
	}

	field = strings.TrimPrefix(orderBy, "-")
	desc = field != orderBy
	_, ok = eventOrderFields[field]

	return field, desc, ok
}

// EventFilter holds the optional search criteria. Zero values mean "not filtered".
type EventFilter struct {
	Query         string
	CategoryID    *uint
	DateFrom      *time.Time
	DateTo        *time.Time
	PriceMin      *float64
	PriceMax      *float64
	Status        string
	Location      string
	AvailableOnly bool
	FavoritesOnly bool
	OrganizerID   *uint
	OrderBy       string
}
