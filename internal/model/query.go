package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// AskRequest represents a free-text question
type AskRequest struct {
	Utterance string `json:"utterance" binding:"required"`
	Name      string `json:"name,omitempty"` // display name used by the greeting
}

// AskResponse represents the answer to a free-text question
type AskResponse struct {
	Answer     string  `json:"answer"`
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Took       int64   `json:"took_ms"` // Response time in milliseconds
}

// Units and currencies accepted by the purchase form
const (
	UnitPound    = "pound"
	UnitKilogram = "kilogram"

	CurrencyUSD = "USD"
	CurrencyCOP = "COP"
)

// PurchaseForm represents the raw purchase form fields.
// Quantity is kept as text so non-numeric input can be reported back to the user.
type PurchaseForm struct {
	Variety    string `json:"variety" form:"variety"`
	Producer   string `json:"producer" form:"producer"`
	Properties string `json:"properties" form:"properties"`
	Quantity   string `json:"quantity" form:"quantity"`
	Unit       string `json:"unit" form:"unit"`
	Currency   string `json:"currency" form:"currency"`
}

// UnmarshalJSON accepts quantity either as a JSON string or a JSON number.
// Numbers keep their literal text.
func (f *PurchaseForm) UnmarshalJSON(data []byte) error {
	type plain PurchaseForm
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Quantity)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		f.Quantity = ""
	case raw[0] == '"':
		return json.Unmarshal(raw, &f.Quantity)
	default:
		// anything else is left for quantity validation to reject
		f.Quantity = string(raw)
	}
	return nil
}

// Quote is a priced purchase
type Quote struct {
	ID             string    `json:"id" db:"id"`
	Variety        string    `json:"variety" db:"variety"`
	Producer       string    `json:"producer" db:"producer"`
	Properties     string    `json:"properties" db:"properties"`
	Quantity       float64   `json:"quantity" db:"quantity"`
	Unit           string    `json:"unit" db:"unit"`
	QuantityLb     float64   `json:"quantity_lb" db:"quantity_lb"`
	UnitPriceUSD   float64   `json:"unit_price_usd" db:"unit_price_usd"`
	TotalUSD       float64   `json:"total_usd" db:"total_usd"`
	Currency       string    `json:"currency" db:"currency"`
	Total          float64   `json:"total" db:"total"`
	CarbonCredits  float64   `json:"carbon_credits" db:"carbon_credits"`
	PriceFromBlend bool      `json:"price_from_blend" db:"price_from_blend"` // producer had no lots of the variety
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// PurchaseResponse represents the outcome of a purchase request
type PurchaseResponse struct {
	Summary string `json:"summary"`
	Quote   *Quote `json:"quote,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

// OptionsResponse lists the values the purchase form can offer
type OptionsResponse struct {
	Varieties  []string `json:"varieties"`
	Years      []int    `json:"years"`
	Producers  []string `json:"producers,omitempty"`
	Properties []string `json:"properties,omitempty"`
	Units      []string `json:"units"`
	Currencies []string `json:"currencies"`
}

// PurchaseListResponse represents recorded purchases
type PurchaseListResponse struct {
	Purchases []Quote `json:"purchases"`
	Total     int     `json:"total"`
}
