// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerd/ledgerd/internal/model"
)

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse is the full user shape, returned exactly once at
// registration. It is the only place the API key appears.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPublic is the reduced user shape for all other read paths.
// The API key is redacted.
type UserPublic struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User to the full creation response.
func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		APIKey:    u.APIKey,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserPublic converts a User to the redacted public shape.
func ToUserPublic(u *model.User) *UserPublic {
	return &UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserPublicList converts a slice of Users to public shapes.
// The result is never nil so an empty list serializes as [].
func ToUserPublicList(users []*model.User) []UserPublic {
	out := make([]UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserPublic(u))
	}
	return out
}
