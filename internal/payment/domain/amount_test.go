package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"amount": 150.5}`, 150.5},
		{"integer", `{"amount": 200}`, 200},
		{"string number", `{"amount": "99.99"}`, 99.99},
		{"string with spaces", `{"amount": " 42 "}`, 42},
		{"garbage string", `{"amount": "abc"}`, 0},
		{"empty string", `{"amount": ""}`, 0},
		{"null", `{"amount": null}`, 0},
		{"absent", `{}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body struct {
				Amount domain.Amount `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &body))
			assert.Equal(t, tc.want, body.Amount.Float64())
		})
	}
}
