package response

import (
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/jwthelper"
)

type AuthResponse struct {
	Tokens jwthelper.TokenPair `json:"tokens"`
	User   domain.User         `json:"user"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type Detail struct {
	Detail string `json:"detail"`
}

type Status struct {
	Status string `json:"status"`
}

type RegistrationAction struct {
	Success      string              `json:"success"`
	Registration domain.Registration `json:"registration"`
}

type Healthcheck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
