package money_test

import (
	"encoding/json"
	"hotelbook/shared/money"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    money.Amount
		wantErr bool
	}{
		{name: "whole units", input: "2500", want: 250000},
		{name: "one decimal", input: "2500.5", want: 250050},
		{name: "two decimals", input: "2500.05", want: 250005},
		{name: "negative", input: "-1.25", want: -125},
		{name: "surrounding spaces", input: " 10.00 ", want: 1000},
		{name: "empty", input: "", wantErr: true},
		{name: "three decimals", input: "1.234", wantErr: true},
		{name: "trailing dot", input: "12.", wantErr: true},
		{name: "letters", input: "12a", wantErr: true},
		{name: "explicit plus", input: "+5", want: 500},
		{name: "largest value", input: "92233720368547757.99", want: 9223372036854775799},
		{name: "sign after the sign", input: "+-5", wantErr: true},
		{name: "double minus", input: "--5", wantErr: true},
		{name: "signed fraction", input: "1.+5", wantErr: true},
		{name: "negative fraction", input: "1.-5", wantErr: true},
		{name: "bare sign", input: "-", wantErr: true},
		{name: "units overflow once scaled", input: "92233720368547758", wantErr: true},
		{name: "units overflow int64", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	rate := money.FromMajor(2500)

	assert.Equal(t, "5000.00", rate.Mul(2).String())
	assert.Equal(t, "2500.50", rate.Add(50).String())
	assert.Equal(t, "-0.05", money.Amount(-5).String())
	assert.True(t, rate.IsPositive())
	assert.True(t, money.Amount(0).IsZero())
}

func TestAmount_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Amount money.Amount `json:"amount"`
	}{Amount: money.FromMajor(5000)})

	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"5000.00"}`, string(payload))

	var decoded struct {
		Amount money.Amount `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":3500}`), &decoded))
	assert.Equal(t, money.FromMajor(3500), decoded.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.30"}`), &decoded))
	assert.Equal(t, money.Amount(1230), decoded.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &decoded))
}

func TestAmount_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want money.Amount
	}{
		{name: "numeric bytes", src: []byte("5000.00"), want: 500000},
		{name: "numeric string with extra scale", src: "12.3400", want: 1234},
		{name: "integer", src: int64(7), want: 700},
		{name: "float", src: float64(19.99), want: 1999},
		{name: "null", src: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var amount money.Amount

			require.NoError(t, amount.Scan(tt.src))
			assert.Equal(t, tt.want, amount)
		})
	}

	var amount money.Amount
	assert.Error(t, amount.Scan(true))

	value, err := money.Amount(123456).Value()
	require.NoError(t, err)
	assert.Equal(t, "1234.56", value)
}
