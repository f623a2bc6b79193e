package auth

import (
	"github.com/collectpay/collectpay/internal/auth/service"
	"github.com/collectpay/collectpay/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.NewIssuer),
	fx.Provide(service.New),
)
