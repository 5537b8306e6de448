package request

import (
	"errors"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

var eventStatuses = []interface{}{
	domain.EventStatusDraft,
	domain.EventStatusPublished,
	domain.EventStatusCancelled,
}

// CreateEventRequest binds from JSON or from a multipart form carrying an "image" file.
type CreateEventRequest struct {
	Title       string    `json:"title" form:"title"`
	Description string    `json:"description" form:"description"`
	CategoryID  *uint     `json:"category" form:"category"`
	Location    string    `json:"location" form:"location"`
	Venue       string    `json:"venue" form:"venue"`
	StartDate   time.Time `json:"start_date" form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate     time.Time `json:"end_date" form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Capacity    int       `json:"capacity" form:"capacity"`
	Price       float64   `json:"price" form:"price"`
	Status      string    `json:"status" form:"status" enums:"draft,published,cancelled"`
	IsPrivate   bool      `json:"is_private" form:"is_private"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Venue, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Capacity, validation.Required),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
	)
}

func (req *CreateEventRequest) ToDomain() domain.Event {
	return domain.Event{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Location:    req.Location,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Status:      req.Status,
		IsPrivate:   req.IsPrivate,
	}
}

// UpdateEventRequest is a partial update. ClearCategory detaches the event from its category.
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	CategoryID    *uint      `json:"category"`
	ClearCategory bool       `json:"clear_category"`
	Location      *string    `json:"location"`
	Venue         *string    `json:"venue"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Capacity      *int       `json:"capacity"`
	Price         *float64   `json:"price"`
	Status        *string    `json:"status" enums:"draft,published,cancelled"`
	IsPrivate     *bool      `json:"is_private"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.NilOrNotEmpty),
		validation.Field(&req.Location, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Venue, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
	)
}

func (req *UpdateEventRequest) ToDomain() domain.EventUpdate {
	return domain.EventUpdate{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Location:      req.Location,
		Venue:         req.Venue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Capacity:      req.Capacity,
		Price:         req.Price,
		Status:        req.Status,
		IsPrivate:     req.IsPrivate,
	}
}

type SearchEventsRequest struct {
	PageRequest
	Query         string     `form:"q"`
	Category      string     `form:"category"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02T15:04:05Z07:00"`
	PriceMin      *float64   `form:"price_min"`
	PriceMax      *float64   `form:"price_max"`
	Status        string     `form:"status"`
	Location      string     `form:"location"`
	AvailableOnly bool       `form:"available_only"`
	FavoritesOnly bool       `form:"favorites_only"`
	Organizer     *uint      `form:"organizer"`
	OrderBy       string     `form:"order_by"`
}

func (req *SearchEventsRequest) Validate() error {
	if err := req.PageRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Category, validation.By(isCategoryID)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
	)
}

// ToDomain expects Validate to have passed. An empty category is ignored.
func (req *SearchEventsRequest) ToDomain() domain.EventFilter {
	filter := domain.EventFilter{
		Query:         req.Query,
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
		PriceMin:      req.PriceMin,
		PriceMax:      req.PriceMax,
		Status:        req.Status,
		Location:      req.Location,
		AvailableOnly: req.AvailableOnly,
		FavoritesOnly: req.FavoritesOnly,
		OrganizerID:   req.Organizer,
		OrderBy:       req.OrderBy,
	}

	if id, err := strconv.ParseUint(req.Category, 10, 32); err == nil {
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	return filter
}

func isCategoryID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if _, err := strconv.ParseUint(s, 10, 32); err != nil {
		return errors.New("must be a category id")
	}

	return nil
}
