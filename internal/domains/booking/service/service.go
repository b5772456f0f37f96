package service

import (
	"context"
	"fmt"

	"atelier/config"
	"atelier/infras/kafka"
	"atelier/infras/otel"
	"atelier/internal/domains/booking/model"
	"atelier/internal/domains/booking/model/dto"
	"atelier/internal/domains/booking/repository"
	childModel "atelier/internal/domains/child/model"
	childDto "atelier/internal/domains/child/model/dto"
	childRepo "atelier/internal/domains/child/repository"
	customerModel "atelier/internal/domains/customer/model"
	customerRepo "atelier/internal/domains/customer/repository"
	inviteModel "atelier/internal/domains/invite/model"
	inviteRepo "atelier/internal/domains/invite/repository"
	slotModel "atelier/internal/domains/slot/model"
	slotRepo "atelier/internal/domains/slot/repository"
	"atelier/shared"
	"atelier/shared/cache"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/failure"
	"atelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingPaid          = "booking.paid"
	EventBookingDeleted       = "booking.deleted"
)

// Event is the payload published to the booking events topic.
type Event struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	SlotID     string `json:"slot_id"`
	StudioID   string `json:"studio_id"`
	Status     string `json:"status"`
	Paid       bool   `json:"paid"`
	OccurredAt string `json:"occurred_at"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateViaInvite(ctx context.Context, shortHash string, req dto.InviteBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) error
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	slots     slotRepo.Slot
	customers customerRepo.Customer
	children  childRepo.Child
	invites   inviteRepo.Invite
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
}

func New(
	repo repository.Booking,
	slots slotRepo.Slot,
	customers customerRepo.Customer,
	children childRepo.Child,
	invites inviteRepo.Invite,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:      repo,
		slots:     slots,
		customers: customers,
		children:  children,
		invites:   invites,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := s.getBookableSlot(ctx, req.SlotID)
	if err != nil {
		return res, err
	}

	if req.CustomerID == constant.Empty && req.ChildID == constant.Empty && req.ChildData == nil {
		return res, failure.BadRequestFromString("booking requires a customer or a child")
	}

	if req.ChildID != constant.Empty && (req.CustomerID != constant.Empty || req.ChildData != nil) {
		return res, failure.BadRequestFromString("booking must reference exactly one of customer or child")
	}

	if req.ChildData != nil && req.CustomerID == constant.Empty {
		return res, failure.BadRequestFromString("child data requires a customer")
	}

	return s.book(ctx, slot, req.CustomerID, req.ChildID, req.ChildData, user)
}

func (s *serviceImpl) CreateViaInvite(ctx context.Context, shortHash string, req dto.InviteBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateViaInvite")
	defer scope.End()
	defer scope.TraceIfError(err)

	invite, err := s.getValidInvite(ctx, shortHash)
	if err != nil {
		return res, err
	}

	slot, err := s.getBookableSlot(ctx, req.SlotID)
	if err != nil {
		return res, err
	}

	// The invite pins the tenant; a slot from another studio stays invisible.
	if slot.StudioID != invite.StudioID {
		log.Error().Str("slotID", slot.ID).Msg("slot outside invite studio")

		return res, failure.NotFound("slot not found")
	}

	if req.ChildID != constant.Empty && req.Child != nil {
		return res, failure.BadRequestFromString("booking must reference exactly one of customer or child")
	}

	// The invite also pins the customer: existing and inline children alike
	// must belong to the invited customer, never an arbitrary one.
	return s.book(ctx, slot, invite.CustomerID, req.ChildID, req.Child, invite.CustomerID)
}

// book runs the shared validate/capacity/insert path for both creation flows.
// customerID/childID/childData arrive pre-shaped: exactly one party, with
// inline child data accompanied by the parent customer in customerID (direct
// flow) or implied by the invite (user carries the acting identity). When both
// customerID and childID are set, customerID pins the child's owner.
func (s *serviceImpl) book(ctx context.Context, slot slotModel.Slot, customerID, childID string, childData *childDto.InlineChildRequest, user string) (res dto.BookingResponse, err error) {
	var bookingCustomerID, bookingChildID *string

	parentID := customerID

	switch {
	case childID != constant.Empty:
		child, err := s.getChild(ctx, childID)
		if err != nil {
			return res, err
		}

		if child.StudioID != slot.StudioID {
			log.Error().Str("childID", childID).Msg("child outside slot studio")

			return res, failure.NotFound("child not found")
		}

		if customerID != constant.Empty && child.CustomerID != customerID {
			log.Error().Str("childID", childID).Msg("child outside pinned customer")

			return res, failure.NotFound("child not found")
		}

		if !slot.ForChildren {
			return res, failure.BadRequestFromString("slot does not accept child bookings")
		}

		bookingChildID = &child.ID
	case childData != nil:
		if parentID == constant.Empty {
			parentID = user
		}

		customer, err := s.getCustomer(ctx, parentID)
		if err != nil {
			return res, err
		}

		if customer.StudioID != slot.StudioID {
			log.Error().Str("customerID", parentID).Msg("customer outside slot studio")

			return res, failure.NotFound("customer not found")
		}

		if !slot.ForChildren {
			return res, failure.BadRequestFromString("slot does not accept child bookings")
		}

		child := childData.ToModel(customer.ID, user)
		if err := s.children.Insert(ctx, child); err != nil {
			return res, err
		}

		bookingChildID = &child.ID
	default:
		customer, err := s.getCustomer(ctx, customerID)
		if err != nil {
			return res, err
		}

		if customer.StudioID != slot.StudioID {
			log.Error().Str("customerID", customerID).Msg("customer outside slot studio")

			return res, failure.NotFound("customer not found")
		}

		if slot.ForChildren {
			return res, failure.BadRequestFromString("slot accepts child bookings only")
		}

		bookingCustomerID = &customer.ID
	}

	booked, err := s.repo.Count(ctx, filterBySlot(slot.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count slot bookings")

		return res, fmt.Errorf("failed to count slot bookings: %w", err)
	}

	if booked >= slot.MaxParticipants {
		return res, failure.Conflict("slot is full")
	}

	booking := dto.NewBooking(slot.ID, bookingCustomerID, bookingChildID, user)

	// The statement-level guard is the authority; the count above only gives
	// a cheaper 409 before we try to write.
	inserted, err := s.repo.InsertGuarded(ctx, booking, slot.MaxParticipants)
	if err != nil {
		return res, err
	}

	if !inserted {
		return res, failure.Conflict("slot is full")
	}

	booking.StudioID = slot.StudioID
	res.FromModel(booking)

	s.publishEvent(ctx, EventBookingCreated, booking)
	s.invalidateListings(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	// Any status may follow any other; the history lives in the event stream.
	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedBy: user,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status

	s.publishEvent(ctx, EventBookingStatusChanged, booking)
	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Paid {
		return failure.BadRequestFromString("booking already paid")
	}

	paidAt, err := req.ParsePaidAt()
	if err != nil {
		return failure.BadRequestFromString("invalid paid_at")
	}

	updatedFields := map[string]any{
		model.FieldPaid:          true,
		model.FieldPaidAt:        paidAt,
		model.FieldPaidMethod:    req.PaidMethod,
		constant.FieldModifiedBy: user,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record booking payment")

		return fmt.Errorf("failed to record booking payment: %w", err)
	}

	booking.Paid = true
	booking.PaidAt = &paidAt
	booking.PaidMethod = &req.PaidMethod

	s.publishEvent(ctx, EventBookingPaid, booking)
	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publishEvent(ctx, EventBookingDeleted, booking)
	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) getBookableSlot(ctx context.Context, id string) (slotModel.Slot, error) {
	slot, err := s.slots.Get(ctx, shared.FilterByID(id, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return slot, fmt.Errorf("failed to get slot: %w", err)
	}

	// Inactive slots hide like missing ones.
	if slot.ID == constant.Empty || !slot.Active {
		return slot, failure.NotFound("slot not found")
	}

	return slot, nil
}

func (s *serviceImpl) getCustomer(ctx context.Context, id string) (customerModel.Customer, error) {
	customer, err := s.customers.Get(ctx, shared.FilterByID(id, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return customer, failure.NotFound("customer not found")
	}

	return customer, nil
}

func (s *serviceImpl) getChild(ctx context.Context, id string) (childModel.Child, error) {
	child, err := s.children.Get(ctx, shared.FilterByID(id, childModel.FieldID, childModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get child")

		return child, fmt.Errorf("failed to get child: %w", err)
	}

	if child.ID == constant.Empty {
		return child, failure.NotFound("child not found")
	}

	return child, nil
}

func (s *serviceImpl) getValidInvite(ctx context.Context, shortHash string) (inviteModel.Invite, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    inviteModel.FieldShortHash,
				Value:    shortHash,
				Operator: gDto.FilterOperatorEq,
				Table:    inviteModel.TableName,
			},
		},
	}

	invite, err := s.invites.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invite")

		return invite, fmt.Errorf("failed to get invite: %w", err)
	}

	// Unknown and expired are indistinguishable on purpose.
	if invite.ID == constant.Empty || invite.Expired(timezone.Now()) {
		return invite, failure.NotFound("invite not found or expired")
	}

	return invite, nil
}

func filterBySlot(slotID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlotID,
				Value:    slotID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := Event{
			Type:       eventType,
			BookingID:  booking.ID,
			SlotID:     booking.SlotID,
			StudioID:   booking.StudioID,
			Status:     booking.Status,
			Paid:       booking.Paid,
			OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
		}

		msg := kafka.Message{Key: booking.ID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, msg); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
