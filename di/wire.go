//go:build wireinject
// +build wireinject

package di

import (
	"atelier/config"
	"atelier/infras/jwt"
	"atelier/infras/kafka"
	"atelier/infras/otel"
	"atelier/infras/postgres"
	"atelier/infras/redis"
	"atelier/infras/s3"
	"atelier/permissions"
	"atelier/shared/cache"
	"atelier/transport/http"
	"atelier/transport/http/middleware"
	"atelier/transport/http/router"

	"github.com/google/wire"

	bookingRepository "atelier/internal/domains/booking/repository"
	bookingService "atelier/internal/domains/booking/service"
	childRepository "atelier/internal/domains/child/repository"
	childService "atelier/internal/domains/child/service"
	customerRepository "atelier/internal/domains/customer/repository"
	customerService "atelier/internal/domains/customer/service"
	inviteRepository "atelier/internal/domains/invite/repository"
	inviteService "atelier/internal/domains/invite/service"
	slotRepository "atelier/internal/domains/slot/repository"
	slotService "atelier/internal/domains/slot/service"
	studioRepository "atelier/internal/domains/studio/repository"
	studioService "atelier/internal/domains/studio/service"

	authService "atelier/internal/domains/auth/service"
	userRepository "atelier/internal/domains/user/repository"

	authHandler "atelier/internal/handlers/auth"
	bookingHandler "atelier/internal/handlers/booking"
	childHandler "atelier/internal/handlers/child"
	customerHandler "atelier/internal/handlers/customer"
	inviteHandler "atelier/internal/handlers/invite"
	publicHandler "atelier/internal/handlers/public"
	slotHandler "atelier/internal/handlers/slot"
	studioHandler "atelier/internal/handlers/studio"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var studioDomain = wire.NewSet(
	studioRepository.New,
	studioService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var childDomain = wire.NewSet(
	childRepository.New,
	childService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var inviteDomain = wire.NewSet(
	inviteRepository.New,
	inviteService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	studioDomain,
	customerDomain,
	childDomain,
	slotDomain,
	bookingDomain,
	inviteDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	studioHandler.New,
	customerHandler.New,
	childHandler.New,
	slotHandler.New,
	bookingHandler.New,
	inviteHandler.New,
	publicHandler.New,
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
