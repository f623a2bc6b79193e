package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/auth/password"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/user/domain"
	"github.com/collectpay/collectpay/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

const minPasswordLen = 6

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLen {
		return nil, domain.ErrInvalidPassword
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleChildAdmin
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}

	if role == domain.RoleChildAdmin && len(req.AppIDs) > 0 {
		if err := s.replaceGrants(ctx, user.ID, req.AppIDs); err != nil {
			return nil, err
		}
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return &user, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.UserView, error) {
	userID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := domain.UserView{User: *user}
	if user.Role == domain.RoleChildAdmin {
		grants, err := s.repo.ListAppAccess(ctx, userID)
		if err != nil {
			return nil, err
		}
		view.AppAccess = grants
	}
	return &view, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	userID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, domain.ErrInvalidUsername
		}
		user.Username = username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if req.Role != nil {
		if !domain.ValidRole(*req.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}

	// Admins carry no per-app grants. Promoting a child_admin drops any it had.
	if user.Role == domain.RoleAdmin {
		if err := s.repo.DeleteAppAccess(ctx, userID); err != nil {
			return nil, err
		}
	} else if req.AppIDs != nil {
		if err := s.replaceGrants(ctx, userID, req.AppIDs); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteAppAccess(ctx, userID); err != nil {
		return err
	}

	s.log.Info("user deleted", zap.String("user_id", userID.String()))
	return nil
}

func (s *Service) AssignApps(ctx context.Context, id string, appIDs []string) error {
	userID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleChildAdmin {
		return domain.ErrNotChildAdmin
	}

	return s.replaceGrants(ctx, userID, appIDs)
}

// replaceGrants swaps the full grant set after checking every appId exists.
func (s *Service) replaceGrants(ctx context.Context, userID snowflake.ID, appIDs []string) error {
	cleaned := make([]string, 0, len(appIDs))
	seen := make(map[string]struct{}, len(appIDs))
	for _, appID := range appIDs {
		appID = strings.TrimSpace(appID)
		if appID == "" {
			continue
		}
		if _, ok := seen[appID]; ok {
			continue
		}
		seen[appID] = struct{}{}
		cleaned = append(cleaned, appID)
	}

	if len(cleaned) > 0 {
		existing, err := s.repo.ExistingAppIDs(ctx, cleaned)
		if err != nil {
			return err
		}
		if len(existing) != len(cleaned) {
			return domain.ErrUnknownApp
		}
	}

	now := s.clock.Now().UTC()
	grants := make([]domain.AppAccess, 0, len(cleaned))
	for _, appID := range cleaned {
		grants = append(grants, domain.AppAccess{
			ID:        s.genID.Generate(),
			UserID:    userID,
			AppID:     appID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return s.repo.ReplaceAppAccess(ctx, userID, grants)
}
