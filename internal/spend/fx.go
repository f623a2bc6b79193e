package spend

import (
	"github.com/collectpay/collectpay/internal/spend/repository"
	"github.com/collectpay/collectpay/internal/spend/service"
	"go.uber.org/fx"
)

var Module = fx.Module("spend.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
