package dto_test

import (
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"hotelbook/shared/model"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "front-desk",
		ModifiedBy: "night-audit",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "front-desk", metadata.CreatedBy)
	assert.Equal(t, "night-audit", metadata.ModifiedBy)

	unset := &dto.Metadata{}
	unset.FromModel(model.Metadata{})

	assert.Equal(t, dto.Metadata{}, *unset)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "room_number",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "room_number", SortDir: "ASC"},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "no defaults",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			queryParams:    map[string]string{"page": "-1", "limit": "abc"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "limit capped",
			queryParams: map[string]string{"limit": "5000"},
			expected:    dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:        "unknown sort direction ignored",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+query.Encode(), nil)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 4}.Offset())
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "check_in; DROP TABLE bookings"}
	params.RestrictSort("id", "id", "check_in")

	assert.Equal(t, "id", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)

	params = dto.QueryParams{SortBy: "check_in", SortDir: dto.SortDirDesc}
	params.RestrictSort("id", "id", "check_in")

	assert.Equal(t, "check_in", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "overlap predicate",
			group: dto.And(
				dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: int64(7)},
				dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"confirmed", "checked_in"}},
				dto.Filter{Field: "check_in", ArgName: "window_end", Operator: dto.FilterOperatorLess, Value: "2024-01-03"},
				dto.Filter{Field: "check_out", ArgName: "window_start", Operator: dto.FilterOperatorGreater, Value: "2024-01-01"},
			),
			wantWhere: "(room_id = :room_id AND status IN (:status_0, :status_1)  AND check_in < :window_end AND check_out > :window_start)",
			wantArgs: map[string]any{
				"room_id":      int64(7),
				"status_0":     "confirmed",
				"status_1":     "checked_in",
				"window_end":   "2024-01-03",
				"window_start": "2024-01-01",
			},
		},
		{
			name: "plain query carries its own args",
			group: dto.And(dto.Filter{
				Operator: dto.FilterPlainQuery,
				Value:    "NOT EXISTS (SELECT 1 FROM bookings b WHERE b.room_id = rooms.id AND b.check_in < :to)",
				Args:     map[string]any{"to": "2024-01-03"},
			}),
			wantWhere: "((NOT EXISTS (SELECT 1 FROM bookings b WHERE b.room_id = rooms.id AND b.check_in < :to)))",
			wantArgs:  map[string]any{"to": "2024-01-03"},
		},
		{
			name: "table qualified null check",
			group: dto.And(
				dto.Filter{Field: "room_id", Table: "bookings", Operator: dto.FilterIsNull},
			),
			wantWhere: "(bookings.room_id IS NULL)",
			wantArgs:  map[string]any{},
		},
		{
			name: "nested disjunction",
			group: dto.And(
				dto.Filter{Field: "hotel_id", Operator: dto.FilterOperatorEq, Value: int64(1)},
				dto.Or(
					dto.Filter{Field: "status", ArgName: "s1", Operator: dto.FilterOperatorEq, Value: "available"},
					dto.Filter{Field: "status", ArgName: "s2", Operator: dto.FilterOperatorNotEq, Value: "maintenance"},
				),
			),
			wantWhere: "(hotel_id = :hotel_id AND (status = :s1 OR status != :s2))",
			wantArgs:  map[string]any{"hotel_id": int64(1), "s1": "available", "s2": "maintenance"},
		},
		{
			name: "empty in list matches nothing",
			group: dto.And(
				dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []int64{}},
			),
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
		{
			name: "unknown operator dropped",
			group: dto.And(
				dto.Filter{Field: "id", Operator: "between", Value: 1},
				dto.Filter{Field: "hotel_id", Operator: dto.FilterOperatorGreaterEq, Value: 2},
			),
			wantWhere: "(hotel_id >= :hotel_id)",
			wantArgs:  map[string]any{"hotel_id": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Add(t *testing.T) {
	group := dto.FilterGroup{}
	group.Add(dto.Filter{Field: "hotel_id", Operator: dto.FilterOperatorEq, Value: int64(1)})

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Len(t, group.Filters, 1)
}
