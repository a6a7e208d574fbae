//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"vsd/internal"
	"vsd/internal/controllers"
	"vsd/internal/providers"
	"vsd/internal/services"
	"vsd/internal/storage"
	"vsd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewMemoryStore,
		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewScheduler,

		services.NewDeviceService,
		services.NewAuthService,
		services.NewVideoCatalog,
		services.NewUploadService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
