package user

import (
	"github.com/collectpay/collectpay/internal/user/repository"
	"github.com/collectpay/collectpay/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
