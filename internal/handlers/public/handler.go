package public

import (
	"net/http"

	"atelier/infras/otel"
	"atelier/internal/domains/booking/model/dto"
	"atelier/internal/domains/booking/service"
	"atelier/shared/constant"
	"atelier/shared/validator"
	"atelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the unauthenticated invite-scoped booking path.
type Handler struct {
	bookings service.Booking
	otel     otel.Otel
}

func New(bookings service.Booking, otel otel.Otel) Handler {
	return Handler{
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invites/{hash}/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBookingViaInvite)
	})
}

// CreateBookingViaInvite books a slot through a customer invite link.
// @Summary Create a booking through an invite
// @Description Reserve a slot for the invited customer or one of their children. No authentication; the invite hash scopes the request.
// @Tags Public
// @Accept json
// @Produce json
// @Param hash path string true "Invite short hash"
// @Param request body dto.InviteBookingRequest true "Invite Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /public/invites/{hash}/bookings [post]
func (handler *Handler) CreateBookingViaInvite(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingViaInvite")
	defer scope.End()

	hash := chi.URLParam(request, constant.RequestParamHash)

	req := dto.InviteBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.bookings.CreateViaInvite(ctx, hash, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking via invite")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully via invite")

	response.WithJSON(writer, http.StatusCreated, booking)
}
