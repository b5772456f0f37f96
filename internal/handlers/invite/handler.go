package invite

import (
	"net/http"

	"atelier/infras/otel"
	"atelier/internal/domains/invite/model"
	"atelier/internal/domains/invite/model/dto"
	"atelier/internal/domains/invite/service"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/validator"
	"atelier/transport/http/middleware"
	"atelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Invite
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Invite, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invites", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInvite)
		routerGroup.Get("/", handler.GetInvites)
	})
}

// CreateInvite issues a booking link for a customer.
// @Summary Create a new invite
// @Description Issue a shareable booking link for a customer of a studio. The link stays valid for the configured TTL and can be used multiple times.
// @Tags Invite
// @Accept json
// @Produce json
// @Param request body dto.CreateInviteRequest true "Create Invite Request"
// @Success 201 {object} dto.InviteResponse "Invite created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invites [post]
// @Security BearerAuth
func (handler *Handler) CreateInvite(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvite")
	defer scope.End()

	req := dto.CreateInviteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	invite, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invite")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Invite created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, invite)
}

// GetInvites retrieves invites with optional filtering.
// @Summary Get all invites
// @Description Retrieve invites filtered by studio or customer.
// @Tags Invite
// @Accept json
// @Produce json
// @Param studio_id query string false "Filter by studio"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} dto.GetInvitesResponse "List of invites"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invites [get]
// @Security BearerAuth
func (handler *Handler) GetInvites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldStudioID, model.FieldCustomerID} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	invites, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invites")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invites retrieved successfully")

	response.WithJSON(w, http.StatusOK, invites)
}
