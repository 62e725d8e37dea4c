// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that owns transactions.
// APIKey is the opaque credential issued once at registration.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}
