package service

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/utils"
)

// Topic names used in answers
const (
	topicVarieties  = "variedades"
	topicPrices     = "precios"
	topicQuality    = "calidad"
	topicYears      = "años de cosecha"
	topicProducers  = "productores y ubicaciones"
	topicProperties = "propiedades de sabor"
	topicCarbon     = "créditos de carbono"
)

var topicMenu = strings.Join([]string{
	topicVarieties, topicPrices, topicQuality, topicYears, topicProducers, topicProperties,
}, ", ") + " o " + topicCarbon

// FallbackAnswer is returned for anything the assistant cannot resolve
var FallbackAnswer = "Lo siento, no entendí tu pregunta. Puedes preguntarme por " + topicMenu + "."

// EmptyDataAnswer is returned when a topic has no data to aggregate
func EmptyDataAnswer(topic string) string {
	return fmt.Sprintf("Lo siento, por ahora no tengo datos de %s. Puedes preguntarme por %s.", topic, topicMenu)
}

// Query is the input every resolver receives
type Query struct {
	Utterance string
	UserName  string
}

// Resolver computes the answer for one intent. It returns an *EmptyDataError
// when no rows qualify.
type Resolver func(q Query, store *dataset.Store) (string, error)

// DefaultResolvers returns the lookup table from intent to resolver
func DefaultResolvers() map[model.Intent]Resolver {
	return map[model.Intent]Resolver{
		model.IntentVariety:          resolveVariety,
		model.IntentPrice:            resolvePrice,
		model.IntentPriceMax:         resolvePriceMax,
		model.IntentPriceMin:         resolvePriceMin,
		model.IntentQuality:          resolveQuality,
		model.IntentQualityMax:       resolveQualityMax,
		model.IntentHarvestYear:      resolveHarvestYear,
		model.IntentProducerLocation: resolveProducerLocation,
		model.IntentProperties:       resolveProperties,
		model.IntentCarbonCredits:    resolveCarbonCredits,
		model.IntentCarbonCreditsMax: resolveCarbonCreditsMax,
		model.IntentGreeting:         resolveGreeting,
	}
}

func resolveVariety(_ Query, store *dataset.Store) (string, error) {
	varieties := store.UniqueVarieties()
	if len(varieties) == 0 {
		return "", emptyData(topicVarieties)
	}
	return fmt.Sprintf("Trabajamos con las siguientes variedades de café: %s.", strings.Join(varieties, ", ")), nil
}

// resolvePrice answers for the first listed variety named in the utterance.
// When one variety name contains another, the alphabetically first match wins.
func resolvePrice(q Query, store *dataset.Store) (string, error) {
	varieties := store.UniqueVarieties()
	if len(varieties) == 0 {
		return "", emptyData(topicPrices)
	}

	for _, variety := range longestFirst(varieties) {
		if !utils.ContainsFold(q.Utterance, variety) {
			continue
		}
		lo, hi, ok := priceRange(store, variety)
		if !ok {
			return "", emptyData(topicPrices + " de " + variety)
		}
		return fmt.Sprintf("El café de variedad %s tiene un precio entre $%s y $%s USD por libra.",
			variety, utils.ShortFloat(utils.Round2(lo)), utils.ShortFloat(utils.Round2(hi))), nil
	}

	return fmt.Sprintf("Por favor especifica una variedad de café para darte el precio correspondiente. Variedades disponibles: %s.",
		strings.Join(varieties, ", ")), nil
}

// longestFirst orders names by length, longest first, so "Caturra Amarilla"
// is tried before "Caturra". Equal lengths keep their order.
func longestFirst(names []string) []string {
	ordered := slices.Clone(names)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a))
	})
	return ordered
}

func priceRange(store *dataset.Store, variety string) (lo, hi float64, ok bool) {
	for lot := range store.RowsMatching(func(l model.Lot) bool { return l.IsVariety(variety) && l.Price != nil }) {
		p := *lot.Price
		if !ok || p < lo {
			lo = p
		}
		if !ok || p > hi {
			hi = p
		}
		ok = true
	}
	return lo, hi, ok
}

func resolvePriceMax(_ Query, store *dataset.Store) (string, error) {
	lot, ok := extremeLot(store, priceOf, true)
	if !ok {
		return "", emptyData(topicPrices)
	}
	return fmt.Sprintf("El café más costoso es %s, a $%s USD por libra.",
		describeLot(lot), utils.ShortFloat(utils.Round2(*lot.Price))), nil
}

func resolvePriceMin(_ Query, store *dataset.Store) (string, error) {
	lot, ok := extremeLot(store, priceOf, false)
	if !ok {
		return "", emptyData(topicPrices)
	}
	return fmt.Sprintf("El café más económico es %s, a $%s USD por libra.",
		describeLot(lot), utils.ShortFloat(utils.Round2(*lot.Price))), nil
}

func resolveQuality(_ Query, store *dataset.Store) (string, error) {
	var sum float64
	var n int
	for lot := range store.RowsMatching(func(l model.Lot) bool { return l.QualityScore != nil }) {
		sum += *lot.QualityScore
		n++
	}
	if n == 0 {
		return "", emptyData(topicQuality)
	}
	mean := utils.Round2(sum / float64(n))
	return fmt.Sprintf("El puntaje de calidad promedio de nuestros cafés es de %s puntos sobre 100.", utils.ShortFloat(mean)), nil
}

func resolveQualityMax(_ Query, store *dataset.Store) (string, error) {
	lot, ok := extremeLot(store, qualityOf, true)
	if !ok {
		return "", emptyData(topicQuality)
	}
	return fmt.Sprintf("El café mejor calificado es %s, con un puntaje de %s.",
		describeLot(lot), utils.ShortFloat(utils.Round2(*lot.QualityScore))), nil
}

func resolveHarvestYear(_ Query, store *dataset.Store) (string, error) {
	years := store.UniqueYears()
	if len(years) == 0 {
		return "", emptyData(topicYears)
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return fmt.Sprintf("Tenemos café de las cosechas de los años: %s.", strings.Join(parts, ", ")), nil
}

func resolveProducerLocation(_ Query, store *dataset.Store) (string, error) {
	var lines []string
	for lot := range store.RowsMatching(func(l model.Lot) bool { return l.ProducerName != nil && l.Location != nil }) {
		lines = append(lines, fmt.Sprintf("%s – %s (%s)", lot.Variety, *lot.ProducerName, *lot.Location))
	}
	if len(lines) == 0 {
		return "", emptyData(topicProducers)
	}
	return strings.Join(lines, "\n"), nil
}

func resolveProperties(_ Query, store *dataset.Store) (string, error) {
	var lines []string
	for lot := range store.RowsMatching(func(l model.Lot) bool { return l.FlavorProperties != nil }) {
		lines = append(lines, fmt.Sprintf("%s: %s", lot.Variety, *lot.FlavorProperties))
	}
	if len(lines) == 0 {
		return "", emptyData(topicProperties)
	}
	return strings.Join(lines, "\n"), nil
}

func resolveCarbonCredits(_ Query, store *dataset.Store) (string, error) {
	totals := producerCredits(store)
	if len(totals) == 0 {
		return "", emptyData(topicCarbon)
	}
	lines := make([]string, len(totals))
	for i, t := range totals {
		lines[i] = fmt.Sprintf("%s: %s créditos de carbono", t.Producer, utils.ShortFloat(utils.Round2(t.Credits)))
	}
	return strings.Join(lines, "\n"), nil
}

func resolveCarbonCreditsMax(_ Query, store *dataset.Store) (string, error) {
	totals := producerCredits(store)
	if len(totals) == 0 {
		return "", emptyData(topicCarbon)
	}
	top := totals[0]
	return fmt.Sprintf("El productor con más créditos de carbono es %s, con %s créditos.",
		top.Producer, utils.ShortFloat(utils.Round2(top.Credits))), nil
}

func resolveGreeting(q Query, _ *dataset.Store) (string, error) {
	return fmt.Sprintf("¡Hola %s! Soy Aracelly, recolectora de Agro-Conecta. Pregúntame sobre los cafés que tenemos disponibles.", q.UserName), nil
}

func priceOf(l model.Lot) *float64   { return l.Price }
func qualityOf(l model.Lot) *float64 { return l.QualityScore }

// extremeLot returns the lot with the largest (or smallest) non-missing field.
// On ties the first lot in dataset order wins.
func extremeLot(store *dataset.Store, field func(model.Lot) *float64, largest bool) (model.Lot, bool) {
	var best model.Lot
	var bestV float64
	found := false
	for lot := range store.RowsMatching(func(l model.Lot) bool { return field(l) != nil }) {
		v := *field(lot)
		if !found || (largest && v > bestV) || (!largest && v < bestV) {
			best, bestV, found = lot, v, true
		}
	}
	return best, found
}

// describeLot renders "Variety de Producer (Location)", omitting missing parts
func describeLot(lot model.Lot) string {
	var b strings.Builder
	b.WriteString(lot.Variety)
	if lot.ProducerName != nil {
		b.WriteString(" de ")
		b.WriteString(*lot.ProducerName)
	}
	if lot.Location != nil {
		b.WriteString(" (")
		b.WriteString(*lot.Location)
		b.WriteString(")")
	}
	return b.String()
}

// ProducerTotal is a producer's summed carbon credits
type ProducerTotal struct {
	Producer string  `json:"producer"`
	Credits  float64 `json:"credits"`
}

// producerCredits sums carbon credits per producer, largest first; ties are
// ordered by producer name.
func producerCredits(store *dataset.Store) []ProducerTotal {
	sums := store.GroupSum(
		func(l model.Lot) (string, bool) { return l.Producer() },
		func(l model.Lot) *float64 { return l.CarbonCredits },
	)
	totals := make([]ProducerTotal, 0, len(sums))
	for producer, credits := range sums {
		totals = append(totals, ProducerTotal{Producer: producer, Credits: credits})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Credits != totals[j].Credits {
			return totals[i].Credits > totals[j].Credits
		}
		return totals[i].Producer < totals[j].Producer
	})
	return totals
}
