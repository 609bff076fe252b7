package shared

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountJSON(t *testing.T) {
	type payload struct {
		Amount Amount  `json:"amount"`
		Salary *Amount `json:"salary,omitempty"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"100.5","salary":2500}`), &p))
	assert.True(t, p.Amount.Equal(MustAmount("100.50")))
	require.NotNil(t, p.Salary)
	assert.Equal(t, "2500.00", p.Salary.String())

	out, err := json.Marshal(payload{Amount: MustAmount("350")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"350.00"}`, string(out))
}

func TestAmountRejectsExtremeExponents(t *testing.T) {
	for _, in := range []string{`"1e10000000"`, `1e10000000`, `"1e-10000000"`, `"1e17"`, `"0.` + strings.Repeat("0", 40) + `1"`} {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(in), &a), in)
	}

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"1.5e3"`), &a))
	assert.Equal(t, "1500.00", a.String())
}

func TestAmountRejectsGarbage(t *testing.T) {
	var a Amount
	require.Error(t, json.Unmarshal([]byte(`"12abc"`), &a))
}

func TestAmountScanAndValue(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan("250.00"))
	assert.Equal(t, "250.00", a.String())

	v, err := MustAmount("0.1").Add(MustAmount("0.2")).Value()
	require.NoError(t, err)
	assert.Equal(t, "0.30", v)
}
