package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/social-events-api/internal/domain"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (req *UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (req *UpdateCategoryRequest) ToDomain() domain.CategoryUpdate {
	return domain.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
}

type ListCategoriesRequest struct {
	PageRequest
	Search        string `form:"search"`
	SortBy        string `form:"sort_by"`
	SortDirection string `form:"sort_direction"`
}

func (req *ListCategoriesRequest) Validate() error {
	if err := req.PageRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.SortDirection, validation.In("asc", "desc", "ASC", "DESC")),
	)
}
