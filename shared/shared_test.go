package shared_test

import (
	"context"
	"errors"
	"hotelbook/shared"
	cacheMocks "hotelbook/shared/cache/mocks"
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
		{name: "zero limit", total: 5, limit: 0, expected: 1},
		{name: "negative limit", total: 5, limit: -1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomPatch struct {
		Status     string `db:"status"`
		RoomNumber string `db:"room_number"`
		Ignored    string `db:"-"`
		NoTag      string
	}

	result := shared.TransformFields(roomPatch{Status: "maintenance", Ignored: "x", NoTag: "y"}, "staff-1")

	assert.Equal(t, "maintenance", result["status"])
	assert.NotContains(t, result, "room_number")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 3)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID(42, "id", "rooms")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: int64(42), Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}, result)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid", input: "15", want: 15},
		{name: "spaces", input: " 7 ", want: 7},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shared.ParseID(tt.input, "room")

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.EqualError(t, err, "invalid room id")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalValues(t *testing.T) {
	id, err := shared.ParseOptionalID("", "class")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = shared.ParseOptionalID("3", "class")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *id)

	_, err = shared.ParseOptionalID("x", "class")
	assert.Error(t, err)

	date, err := shared.ParseOptionalDate("2024-01-01", "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *date)

	date, err = shared.ParseOptionalDate("", "from")
	require.NoError(t, err)
	assert.Nil(t, date)

	_, err = shared.ParseOptionalDate("01-01-2024", "from")
	assert.EqualError(t, err, "from must be a date in YYYY-MM-DD format")
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:12", shared.BuildCacheKey("room:get", int64(12)))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
	assert.Equal(t, "hotel:gets", shared.BuildCacheKey("hotel:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	first := shared.BuildCacheKeyWithQuery("booking:gets", params, map[string]any{"status": "confirmed"})
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, map[string]any{"status": "confirmed"})
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, map[string]any{"status": "pending"})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "booking:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:available:*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:get:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:available", "room:get")
}
