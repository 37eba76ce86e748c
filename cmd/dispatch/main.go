package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"dispatch/config"
	"dispatch/internal/delivery"
	"dispatch/internal/delivery/http"
	"dispatch/internal/delivery/http/middleware"
	"dispatch/internal/delivery/http/router/handler"
	"dispatch/internal/domain/repository"
	"dispatch/internal/domain/service"
	logs "dispatch/internal/infra/log"
	"dispatch/internal/infra/optimizer"
	"dispatch/internal/infra/persistence/postgres"
	"dispatch/internal/infra/pubsub"
	"dispatch/internal/infra/traffic"
	"dispatch/internal/usecase"
	"dispatch/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		// Expose dispatch and optimizer sections for the services that
		// consume them directly
		func(cfg *config.Config) *config.ConstraintsConfig {
			return &cfg.Dispatch.Constraints
		},
		func(cfg *config.Config) *config.ScoringConfig {
			return &cfg.Dispatch.Scoring
		},
		func(cfg *config.Config) *config.SelectorConfig {
			return &cfg.Dispatch.Selector
		},
		func(cfg *config.Config) *config.LoadBalancerConfig {
			return &cfg.Dispatch.LoadBalancer
		},
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewPartnerRepository,
			postgres.NewAssignmentRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			service.NewSystemClock,
			traffic.NewProvider,
			pubsub.NewEventPublisher,
			newOptimizerEngine,
		),
	)
}

// newOptimizerEngine wires the solver engine from configuration
func newOptimizerEngine(cfg *config.Config, trafficProvider service.TrafficProvider, clock service.Clock, logger *slog.Logger) *optimizer.Engine {
	optimizerCfg := config.DefaultOptimizerConfig()
	if cfg.Optimizer != nil {
		optimizerCfg = cfg.Optimizer
	}

	return optimizer.NewEngine(*optimizerCfg, cfg.Dispatch.Scoring, trafficProvider, clock, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewConstraintFilter,
			impl.NewPartnerScorer,
			impl.NewLoadBalancer,
			newDispatchService,
			impl.NewRouteService,
			impl.NewBatchService,
		),
	)
}

// newDispatchService assembles the dispatch service parameter struct
func newDispatchService(
	partners repository.PartnerRepository,
	filter *impl.ConstraintFilter,
	scorer *impl.PartnerScorer,
	balancer *impl.LoadBalancer,
	publisher service.EventPublisher,
	clock service.Clock,
	logger *slog.Logger,
	selector *config.SelectorConfig,
) usecase.DispatchUsecase {
	return impl.NewDispatchService(impl.DispatchServiceParams{
		Partners:  partners,
		Filter:    filter,
		Scorer:    scorer,
		Balancer:  balancer,
		Publisher: publisher,
		Clock:     clock,
		Logger:    logger,
		Selector:  selector,
	})
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDispatchHandler,
			handler.NewRouteHandler,
			handler.NewBatchHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
