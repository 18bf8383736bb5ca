// Package domain provides definitions of all entities exchanged with the banking service.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// User holds user data as returned by the service.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username    string `json:"username" binding:"required,min=3" validate:"required,min=3"`
	Email       string `json:"email" binding:"required,email" validate:"required,email"`
	Password    string `json:"password" binding:"required" validate:"required"`
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
}
