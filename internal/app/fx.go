package app

import (
	"github.com/collectpay/collectpay/internal/app/repository"
	"github.com/collectpay/collectpay/internal/app/service"
	"go.uber.org/fx"
)

var Module = fx.Module("app.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
