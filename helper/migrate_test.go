package helper_test

import (
	"hotelbook/config"
	"hotelbook/helper"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		value   string
		want    helper.Direction
		wantErr bool
	}{
		{value: "up", want: helper.DirectionUp},
		{value: "down", want: helper.DirectionDown},
		{value: "step-up", want: helper.DirectionStepUp},
		{value: "drop", want: helper.DirectionDrop},
		{value: "sideways", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := helper.ParseDirection(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Name = "hotelbook"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://hotel:p%40ss%2Fword@db:5432/test_hotelbook?sslmode=disable&x-migrations-table=schema_migrations",
		helper.DatabaseURL(cfg),
	)

	cfg.DB.Postgres.MigrationTable = ""
	assert.NotContains(t, helper.DatabaseURL(cfg), "x-migrations-table")
}
