package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/auth/domain"
	"github.com/collectpay/collectpay/internal/auth/password"
	"github.com/collectpay/collectpay/internal/auth/token"
	"github.com/collectpay/collectpay/internal/clock"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Issuer   *token.Issuer
	UserRepo userdomain.Repository
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	issuer   *token.Issuer
	userRepo userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("auth.service"),
		clock:    p.Clock,
		issuer:   p.Issuer,
		userRepo: p.UserRepo,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		// Unknown accounts and wrong passwords are indistinguishable to the caller.
		if errors.Is(err, userdomain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		s.log.Warn("login rejected", zap.String("user_id", user.ID.String()))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	signed, err := s.issuer.Issue(user.ID, user.Role, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.log.Info("login succeeded",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return &domain.LoginResponse{Token: signed, User: *user}, nil
}

func (s *Service) Me(ctx context.Context, userID snowflake.ID) (*userdomain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}
