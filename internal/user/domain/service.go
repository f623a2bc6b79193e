package domain

import (
	"context"
	"errors"
)

type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     string
	AppIDs   []string
}

type UpdateUserRequest struct {
	Username *string
	Email    *string
	Role     *string
	IsActive *bool
	AppIDs   []string // nil leaves grants untouched
}

// UserView is a User plus the resolved app grants for child_admins.
type UserView struct {
	User
	AppAccess []string `json:"appAccess"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*UserView, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
	AssignApps(ctx context.Context, id string, appIDs []string) error
}

var (
	ErrNotFound        = errors.New("user_not_found")
	ErrInvalidID       = errors.New("invalid_user_id")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrDuplicateUser   = errors.New("user_exists")
	ErrNotChildAdmin   = errors.New("not_child_admin")
	ErrUnknownApp      = errors.New("unknown_app")
)
