//go:build wireinject
// +build wireinject

package container

import (
	"context"

	"github.com/google/wire"

	"github.com/narwhalmedia/storefront/internal/config"
	dashboardhandler "github.com/narwhalmedia/storefront/internal/dashboard/handler"
	dashboardservice "github.com/narwhalmedia/storefront/internal/dashboard/service"
	orderhandler "github.com/narwhalmedia/storefront/internal/order/handler"
	orderrepo "github.com/narwhalmedia/storefront/internal/order/repository"
	orderservice "github.com/narwhalmedia/storefront/internal/order/service"
	paymenthandler "github.com/narwhalmedia/storefront/internal/payment/handler"
	paymentrepo "github.com/narwhalmedia/storefront/internal/payment/repository"
	productrepo "github.com/narwhalmedia/storefront/internal/product/repository"
	userhandler "github.com/narwhalmedia/storefront/internal/user/handler"
	userrepo "github.com/narwhalmedia/storefront/internal/user/repository"
	userservice "github.com/narwhalmedia/storefront/internal/user/service"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

var infrastructureSet = wire.NewSet(
	ProvideZap,
	wire.Bind(new(interfaces.Logger), new(*logger.ZapLogger)),
	ProvideDatabase,
	ProvideRegistry,
	ProvideCacheMetrics,
	ProvideCache,
	ProvideNATS,
	ProvidePublisher,
	ProvideInvalidator,
	ProvidePhotoStorage,
	ProvideGateways,
)

var repositorySet = wire.NewSet(
	userrepo.NewGormRepository,
	wire.Bind(new(userrepo.Repository), new(*userrepo.GormRepository)),
	wire.Bind(new(dashboardservice.UserSource), new(*userrepo.GormRepository)),

	productrepo.NewGormRepository,
	wire.Bind(new(productrepo.Repository), new(*productrepo.GormRepository)),
	wire.Bind(new(orderservice.StockReducer), new(*productrepo.GormRepository)),
	wire.Bind(new(dashboardservice.ProductSource), new(*productrepo.GormRepository)),

	orderrepo.NewGormRepository,
	wire.Bind(new(orderrepo.Repository), new(*orderrepo.GormRepository)),
	wire.Bind(new(dashboardservice.OrderSource), new(*orderrepo.GormRepository)),

	paymentrepo.NewGormRepository,
	wire.Bind(new(paymentrepo.Repository), new(*paymentrepo.GormRepository)),
)

var serviceSet = wire.NewSet(
	userservice.NewUserService,
	ProvideProductService,
	orderservice.NewOrderService,
	ProvidePaymentService,
	dashboardservice.NewDashboardService,
)

var handlerSet = wire.NewSet(
	userhandler.NewHTTPHandler,
	ProvideProductHandler,
	orderhandler.NewHTTPHandler,
	paymenthandler.NewHTTPHandler,
	dashboardhandler.NewHTTPHandler,
	ProvideRouter,
)

// InitializeApp builds the storefront server with all dependencies
func InitializeApp(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		serviceSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)

	return nil, nil, nil
}
