package main

import (
	"github.com/fekuna/bao-console/config"
	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/spf13/cobra"

	apptH "github.com/fekuna/bao-console/internal/appointment/handler"
	apptRepoPkg "github.com/fekuna/bao-console/internal/appointment/repository"
	apptUCPkg "github.com/fekuna/bao-console/internal/appointment/usecase"

	authH "github.com/fekuna/bao-console/internal/auth/handler"
	authRepoPkg "github.com/fekuna/bao-console/internal/auth/repository"
	authUCPkg "github.com/fekuna/bao-console/internal/auth/usecase"

	catH "github.com/fekuna/bao-console/internal/category/handler"
	catUCPkg "github.com/fekuna/bao-console/internal/category/usecase"

	"github.com/fekuna/bao-console/internal/dashboard"
	dashH "github.com/fekuna/bao-console/internal/dashboard/handler"

	"github.com/fekuna/bao-console/internal/inventory"
	invH "github.com/fekuna/bao-console/internal/inventory/handler"
	invUCPkg "github.com/fekuna/bao-console/internal/inventory/usecase"

	orderH "github.com/fekuna/bao-console/internal/order/handler"
	orderRepoPkg "github.com/fekuna/bao-console/internal/order/repository"
	orderUCPkg "github.com/fekuna/bao-console/internal/order/usecase"

	prodH "github.com/fekuna/bao-console/internal/product/handler"
	prodRepoPkg "github.com/fekuna/bao-console/internal/product/repository"
	prodUCPkg "github.com/fekuna/bao-console/internal/product/usecase"

	"github.com/fekuna/bao-console/internal/shop"
	shopH "github.com/fekuna/bao-console/internal/shop/handler"

	studentH "github.com/fekuna/bao-console/internal/student/handler"
	studentRepoPkg "github.com/fekuna/bao-console/internal/student/repository"
	studentUCPkg "github.com/fekuna/bao-console/internal/student/usecase"

	uniH "github.com/fekuna/bao-console/internal/uniform/handler"
	uniRepoPkg "github.com/fekuna/bao-console/internal/uniform/repository"
	uniUCPkg "github.com/fekuna/bao-console/internal/uniform/usecase"
)

type deps struct {
	cfg    *config.Config
	client *apiclient.Client
	tokens auth.TokenStore
	store  *cache.Store
	bus    *activity.Bus
	feed   *activity.Feed
	locker inventory.Locker
	logger logger.ZapLogger
}

func newRootCommand(d *deps) *cobra.Command {
	// Repositories
	authRepo := authRepoPkg.NewHTTPRepository(d.client)
	studentRepo := studentRepoPkg.NewHTTPRepository(d.client)
	prodRepo := prodRepoPkg.NewHTTPRepository(d.client)
	orderRepo := orderRepoPkg.NewHTTPRepository(d.client)
	uniRepo := uniRepoPkg.NewHTTPRepository(d.client)
	apptRepo := apptRepoPkg.NewUnimplementedRepository()

	// UseCases
	authUC := authUCPkg.NewAuthUseCase(authRepo, d.tokens, d.logger)
	studentUC := studentUCPkg.NewStudentUseCase(studentRepo, d.store, d.bus, d.logger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, d.store, d.bus, d.logger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, d.store, d.bus, d.logger)
	uniUC := uniUCPkg.NewUniformUseCase(uniRepo, prodRepo, d.store, d.bus, d.logger)
	invUC := invUCPkg.NewInventoryUseCase(prodRepo, d.locker, d.store, d.bus, d.logger)
	catUC := catUCPkg.NewCategoryUseCase(prodUC, d.logger)
	apptUC := apptUCPkg.NewAppointmentUseCase(apptRepo, d.logger)

	dashSvc := dashboard.NewService(prodUC, orderUC, studentUC, d.feed, d.store, d.logger)
	shopSvc := shop.NewService(prodUC, uniUC, orderUC, d.logger)

	root := &cobra.Command{
		Use:               "baoctl",
		Short:             "Business Affairs Office console",
		Long:              "baoctl manages BAO students, products, uniforms and orders against the BAO REST API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.Gate(authUC),
	}
	root.AddCommand(
		authH.NewAuthHandler(authUC, d.logger).Command(),
		dashH.NewDashboardHandler(dashSvc, d.cfg.Dashboard.RefreshSpec, d.logger).Command(),
		studentH.NewStudentHandler(studentUC, d.logger).Command(),
		prodH.NewProductHandler(prodUC, d.logger).Command(),
		invH.NewInventoryHandler(invUC, d.logger).Command(),
		catH.NewCategoryHandler(catUC, d.logger).Command(),
		uniH.NewUniformHandler(uniUC, d.logger).Command(),
		orderH.NewOrderHandler(orderUC, d.logger).Command(),
		apptH.NewAppointmentHandler(apptUC, d.logger).Command(),
		shopH.NewShopHandler(shopSvc, d.logger).Command(),
	)
	return root
}
