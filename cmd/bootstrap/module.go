package bootstrap

import (
	"roomserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	DispatchModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
