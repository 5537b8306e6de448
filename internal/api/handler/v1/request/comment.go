package request

import validation "github.com/go-ozzo/ozzo-validation"

type CreateCommentRequest struct {
	EventID  uint   `json:"event_id"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`
}

func (req *CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (req *UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required),
	)
}
