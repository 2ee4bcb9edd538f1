package otel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/sainath-666/storefront/internal/config"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/otel/metric"
	"github.com/sainath-666/storefront/internal/otel/trace"
)

type ShutdownFunc func(context.Context) error

func newPropagator() propagation.TextMapPropagator {
	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	return propagator
}

func InitOtelSdk(
	c context.Context,
	serviceName string,
	cfg config.Otel,
) (shutdownFuncs []ShutdownFunc, err error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "InitOtelSdk").
		Logger()

	logger.Info().
		Str(log.KEY_PROCESS, "init propagator").
		Msg("initializing otel propagator")
	propagator := newPropagator()
	otel.SetTextMapPropagator(propagator)
	logger.Info().
		Str(log.KEY_PROCESS, "init propagator").
		Msg("initialized otel propagator")

	if cfg.Host == "" {
		logger.Info().Msg("otel collector not configured, skipping exporters")
		return nil, nil
	}
	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	logger.Info().
		Str(log.KEY_PROCESS, "init tracer provider").
		Msg("initializing otel tracerProvider")
	tracerProvider, err := trace.InitTracerProvider(c, endpoint, serviceName)
	if err != nil {
		err = fmt.Errorf("failed initializing otel tracerProvider with error=%w", err)
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "init tracer provider").
			Msg(err.Error())
		return nil, err
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	logger.Info().
		Str(log.KEY_PROCESS, "init tracer provider").
		Msg("initialized otel tracerProvider")

	logger.Info().
		Str(log.KEY_PROCESS, "init meter provider").
		Msg("initializing meterProvider")
	meterProvider, err := metric.InitMetricProvider(c, endpoint)
	if err != nil {
		err = fmt.Errorf("failed initializing otel meterProvider with error=%w", err)
		logger.Error().
			Err(err).
			Str(log.KEY_PROCESS, "init meter provider").
			Msg(err.Error())
		return shutdownFuncs, err
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	logger.Info().
		Str(log.KEY_PROCESS, "init meter provider").
		Msg("initialized meterProvider")

	return shutdownFuncs, nil
}

func ShutdownOtel(c context.Context, shutdownFuncs []ShutdownFunc) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs error
	for _, shutdown := range shutdownFuncs {
		shutdown := shutdown
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := shutdown(c); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}
