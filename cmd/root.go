package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sainath-666/storefront/internal/api"
	"github.com/sainath-666/storefront/internal/cart"
	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/config"
	"github.com/sainath-666/storefront/internal/constants"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/otel"
)

type services struct {
	client     *api.Client
	products   catalog.ProductCatalog
	categories catalog.CategoryCatalog
	cart       *cart.Cart
	pageSize   int
}

func Start() {
	logger := log.InitLogger("./storefront.log", os.Getenv("STOREFRONT_ENV")).
		With().
		Str(log.KEY_APP_NAME, constants.APP_STOREFRONT).
		Str(log.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	logger = logger.With().Str(log.KEY_PROCESS, "init config").Logger()
	logger.Info().Msg("initializing config")
	cfg := config.InitConfig(c, constants.APP_STOREFRONT)
	logger = logger.With().Any(log.KEY_CONFIG, cfg).Logger()
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KEY_PROCESS, "init otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_STOREFRONT, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KEY_PROCESS, "init services").Logger()
	logger.Info().Msg("initializing services")
	client := api.NewClient(api.Config{BaseUrl: cfg.Api.BaseUrl})
	session := cart.NewSessionStore(cfg.Session.Path)
	svc := &services{
		client:     client,
		products:   catalog.NewProductCatalog(client),
		categories: catalog.NewCategoryCatalog(client),
		cart:       cart.NewCart(client, session),
		pageSize:   cfg.Api.PageSize,
	}
	logger.Info().Msg("initialized services")

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the product catalog and manage the session cart",
	}
	rootCmd.AddCommand(
		newProductsCommand(svc),
		newProductCommand(svc),
		newCategoriesCommand(svc),
		newCartCommand(svc),
		newHealthCommand(svc),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}

func commandLogger(c context.Context, tag string) zerolog.Logger {
	return zerolog.Ctx(c).With().Str(log.KEY_TAG, tag).Logger()
}
