package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// NormalizeEmail returns the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CallerEmail is the authenticated caller's email, normalized. Empty when unauthenticated.
func CallerEmail(ctx context.Context) string {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	return NormalizeEmail(email)
}

// ParseID reads a positive numeric identifier from a path or query value.
func ParseID(value, entity string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid %s id", entity))
	}

	return id, nil
}

// ParseOptionalID is ParseID for optional filters: an empty value yields nil.
func ParseOptionalID(value, entity string) (*int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil //nolint:nilnil
	}

	id, err := ParseID(value, entity)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// ParseOptionalDate reads a YYYY-MM-DD value; an empty value yields nil.
func ParseOptionalDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil //nolint:nilnil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil, failure.BadRequestFromString(field + " must be a date in YYYY-MM-DD format")
	}

	return &date, nil
}

func BuildCacheKey(prefix string, parts ...any) string {
	key := strings.Builder{}
	key.WriteString(prefix)

	for _, part := range parts {
		key.WriteString(cacheKeySeparator)
		key.WriteString(fmt.Sprint(part))
	}

	return key.String()
}

// BuildCacheKeyWithQuery derives a stable key from paging parameters and a filter value.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter any) string {
	hash := fnv.New64a()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter any             `json:"filter"`
	}{Params: params, Filter: filter})
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v|%+v", params, filter))
	}

	_, _ = hash.Write(raw)

	return BuildCacheKey(prefix, strconv.FormatUint(hash.Sum64(), 16))
}

// InvalidateCaches drops every key under prefix. Failures are logged, never returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
