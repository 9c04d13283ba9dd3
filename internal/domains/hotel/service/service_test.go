package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/otel/mocks"
	hotelMocks "hotelbook/internal/domains/hotel/mocks"
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/service"
	"hotelbook/shared/cache"
	cacheMocks "hotelbook/shared/cache/mocks"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/money"
)

func TestHotelService_CreateHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockClasses := hotelMocks.NewMockRoomClass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockClasses, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantID    int64
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, hotel model.Hotel) (int64, error) {
						assert.Equal(t, "H1", hotel.Name)
						assert.Equal(t, "admin-1", hotel.CreatedBy)

						return 1, nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), "hotel:gets:*").Return(nil)
			},
			wantID: 1,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			id, err := svc.CreateHotel(ctx, dto.CreateHotelRequest{Name: "H1", Type: "city"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestHotelService_GetHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, hotelMocks.NewMockRoomClass(ctrl), cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantName  string
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), "hotel:get:1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*dto.HotelResponse) = dto.HotelResponse{ID: 1, Name: "cached"}

						return nil
					})
			},
			wantName: "cached",
		},
		{
			name: "cache miss loads from repository",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "hotel:get:1", gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{ID: 1, Name: "H1"}, nil)
				mockCache.EXPECT().Save(gomock.Any(), "hotel:get:1", gomock.Any(), 3600).Return(nil)
			},
			wantName: "H1",
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetHotel(context.Background(), 1)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
		})
	}
}

func TestHotelService_ListHotels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, hotelMocks.NewMockRoomClass(ctrl), cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	mockRepo.EXPECT().Count(gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams) ([]model.Hotel, error) {
			// unknown sort columns fall back to the id
			assert.Equal(t, model.FieldID, params.SortBy)

			return []model.Hotel{{ID: 1, Name: "H1"}, {ID: 2, Name: "H2"}}, nil
		})
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil)

	res, err := svc.ListHotels(context.Background(), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Hotels, 2)
}

func TestHotelService_UpdateHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, hotelMocks.NewMockRoomClass(ctrl), cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.UpdateHotelRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "renames and evicts caches",
			req:  dto.UpdateHotelRequest{Name: " Seaside ", Description: "by the bay"},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(1), model.HotelPatch{Name: "Seaside", Description: "by the bay"}, "admin-1").
					Return(true, nil)
				mockCache.EXPECT().Delete(gomock.Any(), "hotel:get:1").Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), "hotel:gets:*").Return(nil)
			},
		},
		{
			name:      "empty patch",
			req:       dto.UpdateHotelRequest{Name: "   "},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdateHotelRequest{Type: "resort"},
			setupMock: func() {
				mockRepo.EXPECT().Update(gomock.Any(), int64(1), model.HotelPatch{Type: "resort"}, "admin-1").Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req:  dto.UpdateHotelRequest{Type: "resort"},
			setupMock: func() {
				mockRepo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any(), "admin-1").Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.UpdateHotel(ctx, 1, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestHotelPatch_Apply(t *testing.T) {
	hotel := model.Hotel{Name: "H1", Type: "city", Description: "old"}

	model.HotelPatch{Description: "renovated"}.Apply(&hotel)

	assert.Equal(t, model.Hotel{Name: "H1", Type: "city", Description: "renovated"}, hotel)
	assert.True(t, model.HotelPatch{}.Empty())
}

func TestHotelService_CreateRoomClass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockClasses := hotelMocks.NewMockRoomClass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockClasses, cfg, mockCache, mocks.NewOtel())
	req := dto.CreateRoomClassRequest{Name: "Standard", NightlyRate: money.FromMajor(2500), RoomCount: 10}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "hotel:get:1", gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{ID: 1, Name: "H1"}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockClasses.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, class model.RoomClass) (int64, error) {
						assert.Equal(t, int64(1), class.HotelID)
						assert.Equal(t, money.FromMajor(2500), class.NightlyRate)

						return 5, nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), "class:list:*").Return(nil)
			},
		},
		{
			name: "unknown hotel",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.CreateRoomClass(context.Background(), 1, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_ListRoomClasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockClasses := hotelMocks.NewMockRoomClass(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockClasses, &config.Config{}, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), "class:list:1", gomock.Any()).Return(cache.Nil)
	mockCache.EXPECT().Get(gomock.Any(), "hotel:get:1", gomock.Any()).Return(cache.Nil)
	mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Hotel{ID: 1}, nil)
	mockClasses.EXPECT().GetByHotel(gomock.Any(), int64(1)).Return([]model.RoomClass{
		{ID: 1, HotelID: 1, Name: "Standard", NightlyRate: money.FromMajor(2500)},
		{ID: 2, HotelID: 1, Name: "Deluxe", NightlyRate: money.FromMajor(3500)},
	}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := svc.ListRoomClasses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Deluxe", res[1].Name)
}
