package handler

import "github.com/trailhead/campground-api/internal/core/domain"

// messageResponse is the envelope used for plain success and error bodies.
type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	Message string          `json:"message"`
	User    domain.SafeView `json:"user"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.SafeView `json:"user"`
}
