package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

type PageRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func (req *PageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Page, validation.Min(1)),
		validation.Field(&req.PageSize, validation.Min(1)),
	)
}

// ToPage fills in the defaults and caps the page size at maxSize.
func (req PageRequest) ToPage(defaultSize, maxSize int) domain.Page {
	page := domain.Page{Number: req.Page, Size: req.PageSize}
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = defaultSize
	}
	if page.Size > maxSize {
		page.Size = maxSize
	}

	return page
}
