package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atelier/config"
	"atelier/infras/otel/mocks"
	childMocks "atelier/internal/domains/child/mocks"
	"atelier/internal/domains/child/model"
	"atelier/internal/domains/child/model/dto"
	"atelier/internal/domains/child/service"
	customerMocks "atelier/internal/domains/customer/mocks"
	customerModel "atelier/internal/domains/customer/model"
	cacheMocks "atelier/shared/cache/mocks"
	"atelier/shared/constant"
	"atelier/shared/failure"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"
)

func newChildService(ctrl *gomock.Controller) (service.Child, *childMocks.MockChild, *customerMocks.MockCustomer, *cacheMocks.MockRedisCache) {
	mockRepo := childMocks.NewMockChild(ctrl)
	mockCustomers := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCustomers, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCustomers, mockCache
}

func TestChildService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCustomers, mockCache := newChildService(ctrl)

	customer := customerModel.Customer{
		ID:        "customer-1",
		StudioID:  "studio-1",
		FirstName: "Noa",
	}

	tests := []struct {
		name      string
		req       dto.CreateChildRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation inherits the customer's studio",
			req: dto.CreateChildRequest{
				CustomerID: "customer-1",
				FirstName:  "Tamar",
				Avatar:     "fox",
			},
			setupMock: func() {
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
			name: "customer not found",
			req: dto.CreateChildRequest{
				CustomerID: "missing-customer",
				FirstName:  "Tamar",
				Avatar:     "fox",
			},
			setupMock: func() {
				mockCustomers.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(customerModel.Customer{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req: dto.CreateChildRequest{
				CustomerID: "customer-1",
				FirstName:  "Tamar",
				Avatar:     "fox",
			},
			setupMock: func() {
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
				assert.Equal(t, "studio-1", res.StudioID)
				assert.Equal(t, tt.req.CustomerID, res.CustomerID)
			}
		})
	}
}

func TestChildService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newChildService(ctrl)

	child := model.Child{
		ID:         "child-1",
		CustomerID: "customer-1",
		StudioID:   "studio-1",
		FirstName:  "Tamar",
		Avatar:     "fox",
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
			id:   "child-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "child-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(child, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "child-1",
		},
		{
			name: "child not found",
			id:   "missing-child",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Child{}, nil)
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

func TestChildService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newChildService(ctrl)

	child := model.Child{
		ID:         "child-1",
		CustomerID: "customer-1",
		FirstName:  "Tamar",
	}

	tests := []struct {
		name      string
		req       dto.UpdateChildRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req: dto.UpdateChildRequest{
				FirstName: "Tamar-Lee",
			},
			id: "child-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(child, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "child not found",
			req: dto.UpdateChildRequest{
				FirstName: "Tamar-Lee",
			},
			id: "missing-child",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Child{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChildService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newChildService(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "child-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Child{ID: "child-1", CustomerID: "customer-1"}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "child not found",
			id:   "missing-child",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Child{}, nil)
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
