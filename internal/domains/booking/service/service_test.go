package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atelier/config"
	"atelier/infras/kafka"
	kafkaMocks "atelier/infras/kafka/mocks"
	"atelier/infras/otel/mocks"
	bookingMocks "atelier/internal/domains/booking/mocks"
	"atelier/internal/domains/booking/model"
	"atelier/internal/domains/booking/model/dto"
	"atelier/internal/domains/booking/service"
	childMocks "atelier/internal/domains/child/mocks"
	childModel "atelier/internal/domains/child/model"
	childDto "atelier/internal/domains/child/model/dto"
	customerMocks "atelier/internal/domains/customer/mocks"
	customerModel "atelier/internal/domains/customer/model"
	inviteMocks "atelier/internal/domains/invite/mocks"
	inviteModel "atelier/internal/domains/invite/model"
	slotMocks "atelier/internal/domains/slot/mocks"
	slotModel "atelier/internal/domains/slot/model"
	cacheMocks "atelier/shared/cache/mocks"
	"atelier/shared/constant"
	"atelier/shared/failure"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"
)

type bookingMockSet struct {
	repo      *bookingMocks.MockBooking
	slots     *slotMocks.MockSlot
	customers *customerMocks.MockCustomer
	children  *childMocks.MockChild
	invites   *inviteMocks.MockInvite
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	m := bookingMockSet{
		repo:      bookingMocks.NewMockBooking(ctrl),
		slots:     slotMocks.NewMockSlot(ctrl),
		customers: customerMocks.NewMockCustomer(ctrl),
		children:  childMocks.NewMockChild(ctrl),
		invites:   inviteMocks.NewMockInvite(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	svc := service.New(m.repo, m.slots, m.customers, m.children, m.invites, cfg, m.cache, mocks.NewOtel(), m.kafka)

	return svc, m
}

func adultSlot() slotModel.Slot {
	return slotModel.Slot{
		ID:              "slot-1",
		StudioID:        "studio-1",
		Title:           "Open Wheel Throwing",
		StartsAt:        timezone.Now(),
		DurationMin:     90,
		MaxParticipants: 5,
		ForChildren:     false,
		Active:          true,
	}
}

func childSlot() slotModel.Slot {
	slot := adultSlot()
	slot.ID = "slot-2"
	slot.ForChildren = true

	return slot
}

func validCustomer() customerModel.Customer {
	return customerModel.Customer{
		ID:        "customer-1",
		StudioID:  "studio-1",
		FirstName: "Noa",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func validChild() childModel.Child {
	return childModel.Child{
		ID:         "child-1",
		CustomerID: "customer-1",
		FirstName:  "Adam",
		Avatar:     "https://cdn.example.com/avatars/adam.png",
		StudioID:   "studio-1",
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful customer booking",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(true, nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "slot not found",
			req: dto.CreateBookingRequest{
				SlotID:     "missing-slot",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(slotModel.Slot{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive slot is hidden",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				slot := adultSlot()
				slot.Active = false

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(slot, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "no party given",
			req: dto.CreateBookingRequest{
				SlotID: "slot-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "customer and child together",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-2",
				CustomerID: "customer-1",
				ChildID:    "child-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "child data without customer",
			req: dto.CreateBookingRequest{
				SlotID: "slot-2",
				ChildData: &childDto.InlineChildRequest{
					FirstName: "Adam",
					Avatar:    "https://cdn.example.com/avatars/adam.png",
				},
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "customer from another studio stays hidden",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				customer := validCustomer()
				customer.StudioID = "studio-2"

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(customer, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "child booking on adult slot",
			req: dto.CreateBookingRequest{
				SlotID:  "slot-1",
				ChildID: "child-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.children.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validChild(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "adult booking on child slot",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-2",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "slot full counting every status",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				// Cancelled and no-show rows still occupy seats.
				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(5, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "guarded insert loses the race",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(4, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "inline child booking",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-2",
				CustomerID: "customer-1",
				ChildData: &childDto.InlineChildRequest{
					FirstName: "Adam",
					Avatar:    "https://cdn.example.com/avatars/adam.png",
				},
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.children.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(true, nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "repository error on count",
			req: dto.CreateBookingRequest{
				SlotID:     "slot-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "studio-1", res.StudioID)
				assert.Equal(t, model.StatusConfirmed, res.Status)
			}
		})
	}
}

func TestBookingService_CreateViaInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	validInvite := inviteModel.Invite{
		ID:         "invite-1",
		StudioID:   "studio-1",
		CustomerID: "customer-1",
		ShortHash:  "a1b2c3d4e5f60718",
		ExpiresAt:  timezone.Now().Add(24 * time.Hour),
	}

	tests := []struct {
		name      string
		hash      string
		req       dto.InviteBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful booking for the invited customer",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID: "slot-1",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(adultSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(true, nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "unknown invite",
			hash: "ffffffffffffffff",
			req: dto.InviteBookingRequest{
				SlotID: "slot-1",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inviteModel.Invite{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "expired invite looks like an unknown one",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID: "slot-1",
			},
			setupMock: func() {
				expired := validInvite
				expired.ExpiresAt = timezone.Now().Add(-time.Hour)

				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(expired, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "slot outside the invite studio",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID: "slot-1",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				slot := adultSlot()
				slot.StudioID = "studio-2"

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(slot, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking the invited customer's own child",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID:  "slot-2",
				ChildID: "child-1",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				m.children.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validChild(), nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(true, nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "another customer's child stays hidden",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID:  "slot-2",
				ChildID: "child-9",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				// Same studio, different parent; the invite only covers
				// customer-1's children.
				foreign := validChild()
				foreign.ID = "child-9"
				foreign.CustomerID = "customer-2"

				m.children.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(foreign, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "child slot with no child given",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID: "slot-2",
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "child id and inline child together",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID:  "slot-2",
				ChildID: "child-1",
				Child: &childDto.InlineChildRequest{
					FirstName: "Adam",
					Avatar:    "https://cdn.example.com/avatars/adam.png",
				},
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inline child hangs off the invited customer",
			hash: validInvite.ShortHash,
			req: dto.InviteBookingRequest{
				SlotID: "slot-2",
				Child: &childDto.InlineChildRequest{
					FirstName: "Adam",
					Avatar:    "https://cdn.example.com/avatars/adam.png",
				},
			},
			setupMock: func() {
				m.invites.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validInvite, nil)

				m.slots.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(childSlot(), nil)

				m.customers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validCustomer(), nil)

				m.children.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				m.repo.EXPECT().
					InsertGuarded(gomock.Any(), gomock.Any(), 5).
					Return(true, nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreateViaInvite(context.Background(), tt.hash, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "studio-1", res.StudioID)
			}
		})
	}
}

func TestBookingService_RecordPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	customerID := "customer-1"
	unpaid := model.Booking{
		ID:         "booking-1",
		SlotID:     "slot-1",
		CustomerID: &customerID,
		Status:     model.StatusConfirmed,
		Paid:       false,
	}

	tests := []struct {
		name      string
		id        string
		req       dto.RecordPaymentRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful payment",
			id:   "booking-1",
			req: dto.RecordPaymentRequest{
				PaidMethod: "cash",
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unpaid, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking already paid",
			id:   "booking-1",
			req: dto.RecordPaymentRequest{
				PaidMethod: "bit",
			},
			setupMock: func() {
				paid := unpaid
				paid.Paid = true

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(paid, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid paid_at",
			id:   "booking-1",
			req: dto.RecordPaymentRequest{
				PaidMethod: "cash",
				PaidAt:     "yesterday",
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unpaid, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			req: dto.RecordPaymentRequest{
				PaidMethod: "cash",
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.RecordPayment(ctx, tt.id, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_RecordPayment_PublishesPaidEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	customerID := "customer-1"
	unpaid := model.Booking{
		ID:         "booking-1",
		SlotID:     "slot-1",
		CustomerID: &customerID,
		Status:     model.StatusConfirmed,
		Paid:       false,
	}

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(unpaid, nil)

	m.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	published := make(chan kafka.Message, 1)

	m.kafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
			published <- msgs[0]

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	err := svc.RecordPayment(ctx, "booking-1", dto.RecordPaymentRequest{PaidMethod: model.PaidMethodCash})
	assert.NoError(t, err)

	select {
	case msg := <-published:
		event, ok := msg.Value.(service.Event)
		assert.True(t, ok)
		assert.Equal(t, service.EventBookingPaid, event.Type)
		assert.True(t, event.Paid)
	case <-time.After(time.Second):
		t.Fatal("no booking event published")
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	customerID := "customer-1"
	booking := model.Booking{
		ID:         "booking-1",
		SlotID:     "slot-1",
		CustomerID: &customerID,
		Status:     model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cancel then revive is allowed",
			id:   "booking-1",
			req: dto.UpdateBookingStatusRequest{
				Status: model.StatusCancelled,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			req: dto.UpdateBookingStatusRequest{
				Status: model.StatusNoShow,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			id:   "booking-1",
			req: dto.UpdateBookingStatusRequest{
				Status: model.StatusNoShow,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateStatus(ctx, tt.id, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	customerID := "customer-1"
	booking := model.Booking{
		ID:         "booking-1",
		SlotID:     "slot-1",
		CustomerID: &customerID,
		Status:     model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "booking-1",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "booking-1",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-1",
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, res.ID)
				}
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	customerID := "customer-1"
	booking := model.Booking{
		ID:         "booking-1",
		SlotID:     "slot-1",
		CustomerID: &customerID,
		Status:     model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "booking-1",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			id:   "booking-1",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
