package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:250;unique;not null"`
	Description string `gorm:"not null"`

	OrganizerID uint      `gorm:"not null;index"`
	Organizer   User      `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL"`

	Location  string    `gorm:"size:255;not null"`
	Venue     string    `gorm:"size:255;not null"`
	StartDate time.Time `gorm:"not null;index:idx_events_start_status,priority:1"`
	EndDate   time.Time `gorm:"not null"`
	Capacity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:decimal(10,2);not null"`
	Image     string    `gorm:"not null"`
	Status    string    `gorm:"size:20;not null;index:idx_events_start_status,priority:2"`
	IsPrivate bool      `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventFavorite struct {
	EventID   uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Event     Event     `gorm:"constraint:OnDelete:CASCADE"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}

var eventMutableColumns = []string{
	"title", "slug", "description", "category_id", "location", "venue",
	"start_date", "end_date", "capacity", "price", "status", "is_private", "updated_at",
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func eventUniqueErr(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return ErrEventSlugExists
	}

	return err
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&event).Error; err != nil {
		return Event{}, eventUniqueErr(err)
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	return d.findOne(ctx, "id = ?", id)
}

func (d *EventDAO) FindBySlug(ctx context.Context, slug string) (Event, error) {
	return d.findOne(ctx, "slug = ?", slug)
}

func (d *EventDAO) findOne(ctx context.Context, query string, arg any) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Where(query, arg).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// SlugExists reports whether another event than excludeID already uses slug.
// Pass zero to check against every event.
func (d *EventDAO) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	query := d.db.WithContext(ctx).Model(&Event{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).
		Select(eventMutableColumns).
		Updates(&event)
	if result.Error != nil {
		return Event{}, eventUniqueErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) UpdateImage(ctx context.Context, id uint, image string) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: id}).Updates(map[string]any{
		"image":      image,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// ToggleFavorite removes the favorite if present and adds it otherwise.
// It returns true when the event is now a favorite.
func (d *EventDAO) ToggleFavorite(ctx context.Context, eventID, userID uint) (bool, error) {
	added := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&EventFavorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		added = true
		favorite := EventFavorite{EventID: eventID, UserID: userID}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&favorite).Error
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

// Search runs an event search for requesterID (zero for anonymous) and returns one page
// plus the total number of matches.
func (d *EventDAO) Search(ctx context.Context, requesterID uint, search EventSearch, offset, limit int) ([]Event, int64, error) {
	query := NewEventQueryBuilder(d.db.WithContext(ctx), requesterID).
		Visible().
		Text(search.Query).
		Filter(search).
		Build()

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := OrderEvents(query, search.OrderField, search.OrderDesc).
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, count, nil
}
