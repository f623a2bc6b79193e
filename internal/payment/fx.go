package payment

import (
	"github.com/collectpay/collectpay/internal/payment/repository"
	"github.com/collectpay/collectpay/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
