package studio

import (
	"net/http"

	"atelier/infras/otel"
	"atelier/internal/domains/studio/model"
	"atelier/internal/domains/studio/model/dto"
	"atelier/internal/domains/studio/service"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/validator"
	"atelier/transport/http/middleware"
	"atelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Studio
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Studio, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/studios", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateStudio)
		routerGroup.Get("/", handler.GetStudios)
		routerGroup.Get("/slug/{slug}", handler.GetStudioBySlug)
		routerGroup.Get("/{id}", handler.GetStudioByID)
		routerGroup.Delete("/{id}", handler.DeleteStudio)
	})
}

// CreateStudio registers a new studio owned by the caller.
// @Summary Create a new studio
// @Description Create a studio; the authenticated user becomes its owner.
// @Tags Studio
// @Accept json
// @Produce json
// @Param request body dto.CreateStudioRequest true "Create Studio Request"
// @Success 201 {object} dto.StudioResponse "Studio created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/studios [post]
// @Security BearerAuth
func (handler *Handler) CreateStudio(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStudio")
	defer scope.End()

	req := dto.CreateStudioRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	studio, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create studio")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Studio created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, studio)
}

// GetStudios retrieves studios with optional filtering.
// @Summary Get all studios
// @Description Retrieve studios with optional name filtering and pagination.
// @Tags Studio
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Success 200 {object} dto.GetStudiosResponse "List of studios"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/studios [get]
// @Security BearerAuth
func (handler *Handler) GetStudios(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudios")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	studios, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get studios")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Studios retrieved successfully")

	response.WithJSON(w, http.StatusOK, studios)
}

// GetStudioByID retrieves a studio by its ID.
// @Summary Get a studio by ID
// @Description Retrieve a studio by its unique identifier.
// @Tags Studio
// @Accept json
// @Produce json
// @Param id path string true "Studio ID"
// @Success 200 {object} dto.StudioResponse "Studio details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/studios/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetStudioByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudioByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	studio, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get studio by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Studio retrieved successfully")

	response.WithJSON(w, http.StatusOK, studio)
}

// GetStudioBySlug retrieves a studio by its slug.
// @Summary Get a studio by slug
// @Description Retrieve a studio by its URL slug.
// @Tags Studio
// @Accept json
// @Produce json
// @Param slug path string true "Studio slug"
// @Success 200 {object} dto.StudioResponse "Studio details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/studios/slug/{slug} [get]
// @Security BearerAuth
func (handler *Handler) GetStudioBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudioBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	studio, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get studio by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Studio retrieved successfully")

	response.WithJSON(w, http.StatusOK, studio)
}

// DeleteStudio deletes a studio by its ID.
// @Summary Delete a studio by ID
// @Description Delete a studio and everything under it.
// @Tags Studio
// @Accept json
// @Produce json
// @Param id path string true "Studio ID"
// @Success 200 {object} response.Message "Studio deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/studios/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStudio(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStudio")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete studio")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Studio deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Studio deleted successfully")
}
