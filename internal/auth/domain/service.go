package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
)

type LoginRequest struct {
	Identifier string // username or email
	Password   string
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  userdomain.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID snowflake.ID) (*userdomain.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveUser       = errors.New("inactive_user")
)
