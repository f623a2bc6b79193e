package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/auth/domain"
	"github.com/collectpay/collectpay/internal/auth/password"
	"github.com/collectpay/collectpay/internal/auth/service"
	"github.com/collectpay/collectpay/internal/auth/token"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/config"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	userrepo "github.com/collectpay/collectpay/internal/user/repository"
	"github.com/collectpay/collectpay/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&userdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	issuer := token.NewIssuer(config.Config{AuthJWTSecret: "test-secret", AuthTokenTTL: 168})
	svc := service.New(service.Params{
		Log:      zap.NewNop(),
		Clock:    clock.NewSystemClock(),
		Issuer:   issuer,
		UserRepo: userrepo.New(gdb),
	})
	return svc, gdb, node
}

func seedUser(t *testing.T, gdb *gorm.DB, node *snowflake.Node, username, email, plain string, active bool) userdomain.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := userdomain.User{
		ID:           node.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         userdomain.RoleAdmin,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, gdb, node := setupAuth(t)
	ctx := context.Background()
	user := seedUser(t, gdb, node, "root", "root@example.com", "secret1", true)

	for _, identifier := range []string{"root", "root@example.com"} {
		resp, err := svc.Login(ctx, domain.LoginRequest{Identifier: identifier, Password: "secret1"})
		require.NoError(t, err, identifier)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, gdb, node := setupAuth(t)
	seedUser(t, gdb, node, "root", "root@example.com", "secret1", true)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Identifier: "root", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := setupAuth(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Identifier: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, gdb, node := setupAuth(t)
	seedUser(t, gdb, node, "off", "off@example.com", "secret1", false)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Identifier: "off", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestMe(t *testing.T) {
	svc, gdb, node := setupAuth(t)
	ctx := context.Background()
	user := seedUser(t, gdb, node, "root", "root@example.com", "secret1", true)

	got, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = svc.Me(ctx, node.Generate())
	assert.ErrorIs(t, err, userdomain.ErrNotFound)
}
