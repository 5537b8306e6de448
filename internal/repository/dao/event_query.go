package dao

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventSearch is the storage-level form of an event search. Nil pointers and empty strings
// leave the corresponding filter out.
type EventSearch struct {
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
	OrderField    string
	OrderDesc     bool
	Now           time.Time
}

// EventQueryBuilder composes the visibility rule, free-text search and filters of an event
// search into one GORM statement. Every step ANDs onto the previous ones.
type EventQueryBuilder struct {
	tx          *gorm.DB
	requesterID uint
}

func NewEventQueryBuilder(db *gorm.DB, requesterID uint) *EventQueryBuilder {
	return &EventQueryBuilder{
		tx:          db.Model(&Event{}),
		requesterID: requesterID,
	}
}

// Visible keeps public events, plus the requester's own private events.
func (b *EventQueryBuilder) Visible() *EventQueryBuilder {
	if b.requesterID == 0 {
		b.tx = b.tx.Where("events.is_private = ?", false)
		return b
	}

	b.tx = b.tx.Where("(events.is_private = ? OR events.organizer_id = ?)", false, b.requesterID)

	return b
}

// Text matches q case-insensitively anywhere in the title, description, location or venue.
func (b *EventQueryBuilder) Text(q string) *EventQueryBuilder {
	if q == "" {
		return b
	}

	p := containsPattern(q)
	b.tx = b.tx.Where(
		"(LOWER(events.title) LIKE ? ESCAPE '\\' OR LOWER(events.description) LIKE ? ESCAPE '\\' "+
			"OR LOWER(events.location) LIKE ? ESCAPE '\\' OR LOWER(events.venue) LIKE ? ESCAPE '\\')",
		p, p, p, p,
	)

	return b
}

func (b *EventQueryBuilder) Filter(s EventSearch) *EventQueryBuilder {
	if s.CategoryID != nil {
		b.tx = b.tx.Where("events.category_id = ?", *s.CategoryID)
	}
	if s.DateFrom != nil {
		b.tx = b.tx.Where("events.start_date >= ?", s.DateFrom.UTC())
	}
	if s.DateTo != nil {
		b.tx = b.tx.Where("events.end_date <= ?", s.DateTo.UTC())
	}
	if s.PriceMin != nil {
		b.tx = b.tx.Where("events.price >= ?", *s.PriceMin)
	}
	if s.PriceMax != nil {
		b.tx = b.tx.Where("events.price <= ?", *s.PriceMax)
	}
	if s.Status != "" {
		b.tx = b.tx.Where("events.status = ?", s.Status)
	}
	if s.Location != "" {
		b.tx = b.tx.Where("LOWER(events.location) LIKE ? ESCAPE '\\'", containsPattern(s.Location))
	}
	if s.AvailableOnly {
		now := s.Now
		if now.IsZero() {
			now = time.Now()
		}
		b.tx = b.tx.Where("events.capacity > ? AND events.start_date > ? AND events.status = ?", 0, now.UTC(), "published")
	}
	if s.FavoritesOnly && b.requesterID != 0 {
		b.tx = b.tx.Where(
			"EXISTS (SELECT 1 FROM event_favorites WHERE event_favorites.event_id = events.id AND event_favorites.user_id = ?)",
			b.requesterID,
		)
	}
	if s.OrganizerID != nil {
		b.tx = b.tx.Where("events.organizer_id = ?", *s.OrganizerID)
	}

	return b
}

// Build returns the composed statement. It is a fresh session, so it can be counted and
// then paged without the two calls leaking into each other.
func (b *EventQueryBuilder) Build() *gorm.DB {
	return b.tx.Session(&gorm.Session{})
}

// OrderEvents sorts by field, then by id so pages are stable. The column name is quoted,
// never interpolated.
func OrderEvents(tx *gorm.DB, field string, desc bool) *gorm.DB {
	if field == "" {
		field, desc = "start_date", true
	}

	return tx.
		Order(clause.OrderByColumn{Column: clause.Column{Table: "events", Name: field}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "events", Name: "id"}, Desc: desc})
}
