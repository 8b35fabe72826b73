//go:build wireinject
// +build wireinject

package di

import (
	"tavolo/config"
	"tavolo/infras/kafka"
	"tavolo/infras/otel"
	"tavolo/infras/postgres"
	"tavolo/infras/redis"
	"tavolo/shared/cache"
	"tavolo/transport/http"
	"tavolo/transport/http/middleware"
	"tavolo/transport/http/router"

	availabilityService "tavolo/internal/domains/availability/service"
	reservationRepository "tavolo/internal/domains/reservation/repository"
	reservationService "tavolo/internal/domains/reservation/service"
	tableRepository "tavolo/internal/domains/table/repository"
	tableService "tavolo/internal/domains/table/service"

	healthHandler "tavolo/internal/handlers/health"
	reservationHandler "tavolo/internal/handlers/reservation"
	tableHandler "tavolo/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	tableDomain,
	availabilityDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	tableHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
