package service

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/utils"
)

const (
	// PoundsPerKilogram converts kilogram quantities to pounds
	PoundsPerKilogram = 2.20462

	// DefaultExchangeRate is the COP per USD rate used when none is configured
	DefaultExchangeRate = 4000.0

	minCreditsPerPound = 0.5
	maxCreditsPerPound = 2.5
)

// thousandsGrouped matches quantities such as "1,500" or "12,000.5"
var thousandsGrouped = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)

// Calculator prices purchases against the dataset
type Calculator struct {
	store        *dataset.Store
	exchangeRate float64
	now          func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// CalculatorOption configures a Calculator
type CalculatorOption func(*Calculator)

// WithExchangeRate sets the COP per USD rate. Non-positive rates are ignored.
func WithExchangeRate(rate float64) CalculatorOption {
	return func(c *Calculator) {
		if rate > 0 && !math.IsInf(rate, 0) {
			c.exchangeRate = rate
		}
	}
}

// WithClock sets the clock used to stamp quotes
func WithClock(now func() time.Time) CalculatorOption {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewSeededRand returns a deterministic generator for carbon credit estimates.
// A zero seed draws one from the clock.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewCalculator creates a calculator. A nil rng is replaced by a clock-seeded one.
func NewCalculator(store *dataset.Store, rng *rand.Rand, opts ...CalculatorOption) *Calculator {
	if rng == nil {
		rng = NewSeededRand(0)
	}
	c := &Calculator{
		store:        store,
		exchangeRate: DefaultExchangeRate,
		now:          time.Now,
		rng:          rng,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExchangeRate returns the configured COP per USD rate
func (c *Calculator) ExchangeRate() float64 {
	return c.exchangeRate
}

// Quote validates the form and prices the purchase. Invalid input yields a
// *ValidationError; a variety without any priced lot yields ErrNoPricingData.
func (c *Calculator) Quote(form model.PurchaseForm) (*model.Quote, error) {
	variety := strings.TrimSpace(form.Variety)
	producer := strings.TrimSpace(form.Producer)
	properties := strings.TrimSpace(form.Properties)

	if variety == "" {
		return nil, invalid("variety", "selecciona una variedad de café")
	}
	if producer == "" {
		return nil, invalid("producer", "selecciona un productor")
	}
	if properties == "" {
		return nil, invalid("properties", "selecciona las propiedades del café")
	}

	quantity, err := parseQuantity(form.Quantity)
	if err != nil {
		return nil, err
	}

	unit, ok := utils.NormalizeUnit(form.Unit)
	if !ok {
		return nil, invalid("unit", "la unidad debe ser libras o kilogramos")
	}
	currency, ok := utils.NormalizeCurrency(form.Currency)
	if !ok {
		return nil, invalid("currency", "la moneda debe ser USD o COP")
	}

	if !c.store.HasVariety(variety) {
		return nil, invalid("variety", fmt.Sprintf("la variedad %s no está disponible", variety))
	}

	unitPrice, blended, ok := c.unitPrice(variety, producer)
	if !ok {
		return nil, fmt.Errorf("%w for variety %q", ErrNoPricingData, variety)
	}

	pounds := ToPounds(quantity, unit)
	totalUSD := unitPrice * pounds

	return &model.Quote{
		ID:             uuid.NewString(),
		Variety:        variety,
		Producer:       producer,
		Properties:     properties,
		Quantity:       quantity,
		Unit:           unit,
		QuantityLb:     pounds,
		UnitPriceUSD:   unitPrice,
		TotalUSD:       totalUSD,
		Currency:       currency,
		Total:          ConvertTotal(totalUSD, currency, c.exchangeRate),
		CarbonCredits:  c.estimateCredits(pounds),
		PriceFromBlend: blended,
		CreatedAt:      c.now().UTC(),
	}, nil
}

// Purchase prices the form and renders the outcome as user-facing text. It
// never fails; problems are described in the returned text.
func (c *Calculator) Purchase(form model.PurchaseForm) (string, *model.Quote) {
	quote, err := c.Quote(form)
	if err != nil {
		return DescribeError(err), nil
	}
	return Summary(quote), quote
}

// DescribeError renders a pricing error as user-facing text
func DescribeError(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Por favor revisa el formulario: %s.", verr.Message)
	case errors.Is(err, ErrNoPricingData):
		return "Lo siento, no tenemos información de precios para esa variedad en este momento."
	default:
		return "Lo siento, no pudimos procesar tu compra. Inténtalo de nuevo."
	}
}

// unitPrice is the mean USD per pound price of the producer's lots of the
// variety, or of all lots of the variety when the producer has none.
func (c *Calculator) unitPrice(variety, producer string) (price float64, blended, ok bool) {
	if p, ok := meanPrice(c.store, func(l model.Lot) bool { return l.IsVariety(variety) && l.IsProducer(producer) }); ok {
		return p, false, true
	}
	if p, ok := meanPrice(c.store, func(l model.Lot) bool { return l.IsVariety(variety) }); ok {
		return p, true, true
	}
	return 0, false, false
}

func meanPrice(store *dataset.Store, pred func(model.Lot) bool) (float64, bool) {
	var sum float64
	var n int
	for lot := range store.RowsMatching(func(l model.Lot) bool { return l.Price != nil && pred(l) }) {
		sum += *lot.Price
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// estimateCredits draws between 0.5 and 2.5 credits per pound, rounded to cents
func (c *Calculator) estimateCredits(pounds float64) float64 {
	c.mu.Lock()
	factor := minCreditsPerPound + c.rng.Float64()*(maxCreditsPerPound-minCreditsPerPound)
	c.mu.Unlock()
	return utils.Round2(factor * pounds)
}

// parseQuantity reads a positive quantity. A comma followed by groups of
// exactly three digits separates thousands ("1,500"); any other single comma
// is a decimal mark ("2,5").
func parseQuantity(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, invalid("quantity", "ingresa una cantidad")
	}
	switch {
	case thousandsGrouped.MatchString(text):
		text = strings.ReplaceAll(text, ",", "")
	case strings.Count(text, ",") == 1 && !strings.Contains(text, "."):
		text = strings.Replace(text, ",", ".", 1)
	}
	q, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, invalid("quantity", "la cantidad debe ser un número")
	}
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 0, invalid("quantity", "la cantidad debe ser mayor que cero")
	}
	return q, nil
}

// ToPounds converts a quantity in the normalized unit to pounds
func ToPounds(quantity float64, unit string) float64 {
	if unit == model.UnitKilogram {
		return quantity * PoundsPerKilogram
	}
	return quantity
}

// ConvertTotal converts a USD total to the normalized currency
func ConvertTotal(totalUSD float64, currency string, rate float64) float64 {
	if currency == model.CurrencyCOP {
		return totalUSD * rate
	}
	return totalUSD
}

var unitLabels = map[string]string{
	model.UnitPound:    "libras",
	model.UnitKilogram: "kilogramos",
}

// Summary renders a quote as the purchase confirmation text
func Summary(q *model.Quote) string {
	var b strings.Builder
	b.WriteString("Resumen de tu compra\n")
	fmt.Fprintf(&b, "Variedad: %s\n", q.Variety)
	fmt.Fprintf(&b, "Productor: %s\n", q.Producer)
	fmt.Fprintf(&b, "Propiedades: %s\n", q.Properties)
	if q.Unit == model.UnitKilogram {
		fmt.Fprintf(&b, "Cantidad: %s %s (%s libras)\n",
			utils.ShortFloat(q.Quantity), unitLabels[q.Unit], utils.FormatMoney(q.QuantityLb))
	} else {
		fmt.Fprintf(&b, "Cantidad: %s %s\n", utils.ShortFloat(q.Quantity), unitLabels[q.Unit])
	}
	fmt.Fprintf(&b, "Precio por libra: $%s USD\n", utils.FormatMoney(q.UnitPriceUSD))
	if q.PriceFromBlend {
		b.WriteString("(precio promedio de la variedad; el productor no tiene lotes registrados de ella)\n")
	}
	fmt.Fprintf(&b, "Total: %s%s %s\n", utils.CurrencySymbol(q.Currency), utils.FormatMoney(q.Total), q.Currency)
	fmt.Fprintf(&b, "Créditos de carbono estimados: %s", utils.ShortFloat(q.CarbonCredits))
	return b.String()
}
