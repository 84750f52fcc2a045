package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrela2025/Agro-Conecta/internal/classifier"
	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

const sampleCSV = `coffee_variety,price,ranking,year,name,location,properties,carbon_credits
Caturra,3.0,84,2021,Ana Gómez,Huila,Chocolate,1.2
Caturra,5.0,86,2022,Luis Pérez,Nariño,Frutal,1.1
Geisha,10.0,92,2022,Ana Gómez,Huila,Floral,2.0
`

type stubPredictor struct{ intent model.Intent }

func (p stubPredictor) Decide(string) classifier.Decision {
	return classifier.Decision{Intent: p.intent, Confidence: 0.9}
}

type memoryLedger struct {
	quotes []model.Quote
	err    error
}

func (l *memoryLedger) RecordPurchase(_ context.Context, q *model.Quote) error {
	if l.err != nil {
		return l.err
	}
	l.quotes = append(l.quotes, *q)
	return nil
}

func (l *memoryLedger) RecentPurchases(_ context.Context, limit int) ([]model.Quote, int, error) {
	if l.err != nil {
		return nil, 0, l.err
	}
	n := min(limit, len(l.quotes))
	return l.quotes[:n], len(l.quotes), nil
}

func setupRouter(t *testing.T, intent model.Intent, ledger PurchaseLedger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := dataset.Load(bytes.NewBufferString(sampleCSV))
	require.NoError(t, err)

	h := Handlers{
		Ask:      NewAskHandler(service.NewRouter(stubPredictor{intent}, store)),
		Purchase: NewPurchaseHandler(service.NewCalculator(store, service.NewSeededRand(5)), ledger, 20, 50),
		Options:  NewOptionsHandler(store),
	}

	r := gin.New()
	RegisterRoutes(r, h, BuildInfo{Version: "test"})
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndVersion(t *testing.T) {
	r := setupRouter(t, model.IntentGreeting, nil)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w = do(r, http.MethodGet, "/version", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
}

func TestAsk(t *testing.T) {
	r := setupRouter(t, model.IntentPrice, nil)

	w := do(r, http.MethodPost, "/api/v1/ask", gin.H{"utterance": "cuánto cuesta el caturra"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.IntentPrice, resp.Intent)
	assert.Contains(t, resp.Answer, "entre $3.0 y $5.0")
	assert.InDelta(t, 0.9, resp.Confidence, 1e-12)
	assert.Contains(t, w.Body.String(), `"intent":"price"`)
}

func TestAsk_MissingUtterance(t *testing.T) {
	r := setupRouter(t, model.IntentPrice, nil)

	w := do(r, http.MethodPost, "/api/v1/ask", gin.H{"name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchase(t *testing.T) {
	ledger := &memoryLedger{}
	r := setupRouter(t, model.IntentGreeting, ledger)

	form := gin.H{
		"variety":    "Caturra",
		"producer":   "Ana Gómez",
		"properties": "Chocolate",
		"quantity":   "10",
		"unit":       "lb",
		"currency":   "USD",
	}
	w := do(r, http.MethodPost, "/api/v1/purchase", form)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Quote)
	assert.InDelta(t, 30.0, resp.Quote.TotalUSD, 1e-9)
	assert.Contains(t, resp.Summary, "Total: $30.00 USD")
	require.Len(t, ledger.quotes, 1)
	assert.Equal(t, resp.Quote.ID, ledger.quotes[0].ID)
}

func TestPurchase_Errors(t *testing.T) {
	tests := []struct {
		name      string
		form      gin.H
		wantField string
	}{
		{
			name:      "bad quantity",
			form:      gin.H{"variety": "Caturra", "producer": "Ana Gómez", "properties": "Chocolate", "quantity": "diez", "unit": "lb", "currency": "USD"},
			wantField: "quantity",
		},
		{
			name:      "unknown currency",
			form:      gin.H{"variety": "Caturra", "producer": "Ana Gómez", "properties": "Chocolate", "quantity": "1", "unit": "lb", "currency": "EUR"},
			wantField: "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &memoryLedger{}
			r := setupRouter(t, model.IntentGreeting, ledger)

			w := do(r, http.MethodPost, "/api/v1/purchase", tt.form)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp model.PurchaseResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantField, resp.Field)
			assert.NotEmpty(t, resp.Summary)
			assert.Nil(t, resp.Quote)
			assert.Empty(t, ledger.quotes)
		})
	}
}

func TestPurchase_NumericQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  any
		wantCode  int
		wantTotal float64
	}{
		{name: "integer", quantity: 10, wantCode: http.StatusOK, wantTotal: 30},
		{name: "decimal", quantity: 2.5, wantCode: http.StatusOK, wantTotal: 7.5},
		{name: "negative", quantity: -2, wantCode: http.StatusUnprocessableEntity},
		{name: "boolean", quantity: true, wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, model.IntentGreeting, nil)

			form := gin.H{"variety": "Caturra", "producer": "Ana Gómez", "properties": "Chocolate", "quantity": tt.quantity, "unit": "pound", "currency": "USD"}
			w := do(r, http.MethodPost, "/api/v1/purchase", form)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())

			var resp model.PurchaseResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantCode == http.StatusOK {
				require.NotNil(t, resp.Quote)
				assert.InDelta(t, tt.wantTotal, resp.Quote.TotalUSD, 1e-9)
				return
			}
			assert.Equal(t, "quantity", resp.Field)
			assert.Contains(t, resp.Summary, "Por favor revisa el formulario")
		})
	}
}

func TestPurchase_UnreadableBody(t *testing.T) {
	r := setupRouter(t, model.IntentGreeting, nil)

	w := do(r, http.MethodPost, "/api/v1/purchase", "no es un formulario")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Summary, "Por favor revisa el formulario")
	assert.NotContains(t, w.Body.String(), "json:")
	assert.Nil(t, resp.Quote)
}

func TestPurchase_LedgerFailureStillQuotes(t *testing.T) {
	r := setupRouter(t, model.IntentGreeting, &memoryLedger{err: errors.New("disk full")})

	form := gin.H{"variety": "Geisha", "producer": "Ana Gómez", "properties": "Floral", "quantity": "1", "unit": "kg", "currency": "COP"}
	w := do(r, http.MethodPost, "/api/v1/purchase", form)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPurchases(t *testing.T) {
	r := setupRouter(t, model.IntentGreeting, nil)
	w := do(r, http.MethodGet, "/api/v1/purchases", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	ledger := &memoryLedger{quotes: []model.Quote{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	r = setupRouter(t, model.IntentGreeting, ledger)

	w = do(r, http.MethodGet, "/api/v1/purchases?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.PurchaseListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Purchases, 2)
	assert.Equal(t, 3, resp.Total)

	w = do(r, http.MethodGet, "/api/v1/purchases?limit=-4", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptions(t *testing.T) {
	r := setupRouter(t, model.IntentGreeting, nil)

	w := do(r, http.MethodGet, "/api/v1/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.OptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Caturra", "Geisha"}, resp.Varieties)
	assert.Equal(t, []int{2021, 2022}, resp.Years)
	assert.Empty(t, resp.Producers)

	w = do(r, http.MethodGet, "/api/v1/options?variety=caturra", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = model.OptionsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Ana Gómez", "Luis Pérez"}, resp.Producers)
	assert.Equal(t, []string{"Chocolate", "Frutal"}, resp.Properties)

	w = do(r, http.MethodGet, "/api/v1/options?variety=robusta", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticSite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	site := fstest.MapFS{
		"index.html":    {Data: []byte("<html>agro</html>")},
		"assets/app.js": {Data: []byte("console.log(1)")},
	}
	r := gin.New()
	r.NoRoute(StaticSite(site))

	w := do(r, http.MethodGet, "/assets/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/javascript; charset=utf-8", w.Header().Get("Content-Type"))

	w = do(r, http.MethodGet, "/compras/123", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>agro</html>", w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
