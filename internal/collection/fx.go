package collection

import (
	"github.com/collectpay/collectpay/internal/collection/repository"
	"github.com/collectpay/collectpay/internal/collection/service"
	"go.uber.org/fx"
)

var Module = fx.Module("collection.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
