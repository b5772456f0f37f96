package router

import (
	"atelier/internal/handlers/auth"
	"atelier/internal/handlers/booking"
	"atelier/internal/handlers/child"
	"atelier/internal/handlers/customer"
	"atelier/internal/handlers/invite"
	"atelier/internal/handlers/public"
	"atelier/internal/handlers/slot"
	"atelier/internal/handlers/studio"
	"atelier/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Studio   studio.Handler
	Customer customer.Handler
	Child    child.Handler
	Slot     slot.Handler
	Booking  booking.Handler
	Invite   invite.Handler
	Public   public.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	authRole       middleware.AuthRole
	appMiddleware  middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.appMiddleware.Tracing)
	router.Use(r.appMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.authRole.APIKey)
			protected.Use(r.authRole.Auth)
			protected.Use(r.authRole.RBAC)

			r.DomainHandlers.Auth.RouterProtected(protected)
			r.DomainHandlers.Studio.Router(protected)
			r.DomainHandlers.Customer.Router(protected)
			r.DomainHandlers.Child.Router(protected)
			r.DomainHandlers.Slot.Router(protected)
			r.DomainHandlers.Booking.Router(protected)
			r.DomainHandlers.Invite.Router(protected)
		})
	})

	// Invite-scoped booking is reachable without a session.
	router.Route("/public", func(routerGroup chi.Router) {
		r.DomainHandlers.Public.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		authRole:       authRole,
		appMiddleware:  appMiddleware,
	}
}
