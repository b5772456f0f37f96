package child

import (
	"net/http"

	"atelier/infras/otel"
	"atelier/internal/domains/child/model"
	"atelier/internal/domains/child/model/dto"
	"atelier/internal/domains/child/service"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/validator"
	"atelier/transport/http/middleware"
	"atelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Child
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Child, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/children", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateChild)
		routerGroup.Get("/", handler.GetChildren)
		routerGroup.Get("/{id}", handler.GetChildByID)
		routerGroup.Patch("/{id}", handler.UpdateChild)
		routerGroup.Delete("/{id}", handler.DeleteChild)
	})
}

// CreateChild registers a child under a customer.
// @Summary Create a new child
// @Description Create a child profile attached to an existing customer.
// @Tags Child
// @Accept json
// @Produce json
// @Param request body dto.CreateChildRequest true "Create Child Request"
// @Success 201 {object} dto.ChildResponse "Child created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/children [post]
// @Security BearerAuth
func (handler *Handler) CreateChild(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateChild")
	defer scope.End()

	req := dto.CreateChildRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	child, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create child")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Child created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, child)
}

// GetChildren retrieves children with optional filtering.
// @Summary Get all children
// @Description Retrieve children filtered by customer.
// @Tags Child
// @Accept json
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} dto.GetChildrenResponse "List of children"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/children [get]
// @Security BearerAuth
func (handler *Handler) GetChildren(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChildren")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if customerID := r.URL.Query().Get(model.FieldCustomerID); customerID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCustomerID,
			Operator: gDto.FilterOperatorEq,
			Value:    customerID,
			Table:    model.TableName,
		})
	}

	children, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get children")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Children retrieved successfully")

	response.WithJSON(w, http.StatusOK, children)
}

// GetChildByID retrieves a child by its ID.
// @Summary Get a child by ID
// @Description Retrieve a child by its unique identifier.
// @Tags Child
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} dto.ChildResponse "Child details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/children/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetChildByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChildByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	child, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get child by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Child retrieved successfully")

	response.WithJSON(w, http.StatusOK, child)
}

// UpdateChild updates an existing child by its ID.
// @Summary Update a child by ID
// @Description Update the details of an existing child.
// @Tags Child
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Param request body dto.UpdateChildRequest true "Update Child Request"
// @Success 200 {object} response.Message "Child updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/children/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateChild")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateChildRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update child")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Child updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Child updated successfully")
}

// DeleteChild deletes a child by its ID.
// @Summary Delete a child by ID
// @Description Delete a child using its unique identifier.
// @Tags Child
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} response.Message "Child deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/children/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteChild")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete child")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Child deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Child deleted successfully")
}
