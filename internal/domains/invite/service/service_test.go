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
	"atelier/infras/otel/mocks"
	customerMocks "atelier/internal/domains/customer/mocks"
	customerModel "atelier/internal/domains/customer/model"
	inviteMocks "atelier/internal/domains/invite/mocks"
	"atelier/internal/domains/invite/model/dto"
	"atelier/internal/domains/invite/service"
	studioMocks "atelier/internal/domains/studio/mocks"
	cacheMocks "atelier/shared/cache/mocks"
	"atelier/shared/constant"
	"atelier/shared/failure"
	"atelier/shared/timezone"
)

func TestInviteService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := inviteMocks.NewMockInvite(ctrl)
	mockStudios := studioMocks.NewMockStudio(ctrl)
	mockCustomers := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.Invite.TTLDays = 30

	svc := service.New(mockRepo, mockStudios, mockCustomers, cfg, mockCache, mocks.NewOtel())

	customer := customerModel.Customer{
		ID:        "customer-1",
		StudioID:  "studio-1",
		FirstName: "Noa",
	}

	tests := []struct {
		name      string
		req       dto.CreateInviteRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateInviteRequest{
				StudioID:   "studio-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				mockStudios.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockCustomers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(customer, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "studio not found",
			req: dto.CreateInviteRequest{
				StudioID:   "missing-studio",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				mockStudios.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "customer from another studio stays hidden",
			req: dto.CreateInviteRequest{
				StudioID:   "studio-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				mockStudios.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				foreign := customer
				foreign.StudioID = "studio-2"

				mockCustomers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(foreign, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req: dto.CreateInviteRequest{
				StudioID:   "studio-1",
				CustomerID: "customer-1",
			},
			setupMock: func() {
				mockStudios.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockCustomers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(customer, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
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
				assert.Len(t, res.ShortHash, 16)

				expiresAt, parseErr := timezone.Parse(constant.DateFormat, res.ExpiresAt)
				assert.NoError(t, parseErr)
				assert.True(t, expiresAt.After(timezone.Now().Add(29*24*time.Hour)))
			}
		})
	}
}
