package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

// Validate only bounds sizes. Empty credentials are rejected by the
// service as invalid_credentials so they look like any other failed login.
func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

type LoginData struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}
