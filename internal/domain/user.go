package domain

import "time"

// User represents an account mirrored from the external identity provider.
// ExternalRef is the provider's stable subject identifier and is unique
// across users.
type User struct {
	ID            int64     `json:"id"`
	ExternalRef   string    `json:"externalRef"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	ProfilePic    string    `json:"profilePic"`
	WalletAddress string    `json:"walletAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewUser carries the client-suppliable fields for user creation. ID and
// CreatedAt are server-owned.
type NewUser struct {
	ExternalRef   string `json:"externalRef"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	ProfilePic    string `json:"profilePic"`
	WalletAddress string `json:"walletAddress"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	ProfilePic    *string `json:"profilePic"`
	WalletAddress *string `json:"walletAddress"`
}
