package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntent_NamesRoundTrip(t *testing.T) {
	for _, intent := range KnownIntents() {
		got, ok := ParseIntent(intent.String())
		require.True(t, ok, intent.String())
		assert.Equal(t, intent, got)
	}

	_, ok := ParseIntent("weather")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Intent(200).String())
}

func TestKnownIntents(t *testing.T) {
	known := KnownIntents()
	assert.Len(t, known, 12)
	assert.NotContains(t, known, IntentUnknown)
	assert.Equal(t, IntentVariety, known[0])
	assert.Equal(t, IntentGreeting, known[len(known)-1])
}

func TestIntent_JSON(t *testing.T) {
	data, err := json.Marshal(AskResponse{Intent: IntentCarbonCreditsMax})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"intent":"carbon_credits_max"`)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, IntentCarbonCreditsMax, resp.Intent)

	require.NoError(t, json.Unmarshal([]byte(`{"intent":"nonsense"}`), &resp))
	assert.Equal(t, IntentUnknown, resp.Intent)
}

func TestLot_Matching(t *testing.T) {
	producer := "  Ana Gómez "
	blank := "   "
	lot := Lot{Variety: "Caturra", ProducerName: &producer}

	assert.True(t, lot.IsVariety(" caturra"))
	assert.False(t, lot.IsVariety("Geisha"))
	assert.True(t, lot.IsProducer("ANA GÓMEZ"))

	name, ok := lot.Producer()
	assert.True(t, ok)
	assert.Equal(t, "Ana Gómez", name)

	_, ok = Lot{Variety: "Geisha", ProducerName: &blank}.Producer()
	assert.False(t, ok)
	_, ok = Lot{Variety: "Geisha"}.Producer()
	assert.False(t, ok)
}

func TestPurchaseForm_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string quantity", body: `{"variety":"Caturra","quantity":"2,5"}`, want: "2,5"},
		{name: "integer quantity", body: `{"variety":"Caturra","quantity":10}`, want: "10"},
		{name: "decimal quantity", body: `{"variety":"Caturra","quantity": 2.5 }`, want: "2.5"},
		{name: "null quantity", body: `{"variety":"Caturra","quantity":null}`, want: ""},
		{name: "missing quantity", body: `{"variety":"Caturra"}`, want: ""},
		{name: "boolean kept as text", body: `{"variety":"Caturra","quantity":true}`, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form PurchaseForm
			require.NoError(t, json.Unmarshal([]byte(tt.body), &form))
			assert.Equal(t, "Caturra", form.Variety)
			assert.Equal(t, tt.want, form.Quantity)
		})
	}

	var form PurchaseForm
	assert.Error(t, json.Unmarshal([]byte(`["Caturra"]`), &form))
}
