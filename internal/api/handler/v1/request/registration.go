package request

import validation "github.com/go-ozzo/ozzo-validation"

type CreateRegistrationRequest struct {
	EventID uint   `json:"event_id"`
	Notes   string `json:"notes"`
}

func (req *CreateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
	)
}
