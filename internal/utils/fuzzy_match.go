package utils

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// FoldAccents lowercases text and removes combining diacritical marks after
// NFD normalization, so "Cuánto" and "cuanto" compare equal.
func FoldAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(strings.ToLower(text)) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unitAliases maps user-typed unit names to canonical units
var unitAliases = map[string]string{
	"pound":      model.UnitPound,
	"pounds":     model.UnitPound,
	"lb":         model.UnitPound,
	"lbs":        model.UnitPound,
	"libra":      model.UnitPound,
	"libras":     model.UnitPound,
	"kilogram":   model.UnitKilogram,
	"kilograms":  model.UnitKilogram,
	"kg":         model.UnitKilogram,
	"kgs":        model.UnitKilogram,
	"kilo":       model.UnitKilogram,
	"kilos":      model.UnitKilogram,
	"kilogramo":  model.UnitKilogram,
	"kilogramos": model.UnitKilogram,
}

// NormalizeUnit returns the canonical unit for a user-typed unit name
func NormalizeUnit(unit string) (string, bool) {
	canonical, ok := unitAliases[FoldAccents(strings.TrimSpace(unit))]
	return canonical, ok
}

// NormalizeCurrency returns the canonical currency code
func NormalizeCurrency(currency string) (string, bool) {
	switch strings.ToUpper(FoldAccents(strings.TrimSpace(currency))) {
	case model.CurrencyUSD, "US$", "DOLAR", "DOLARES":
		return model.CurrencyUSD, true
	case model.CurrencyCOP, "PESO", "PESOS":
		return model.CurrencyCOP, true
	}
	return "", false
}

// ContainsFold reports whether needle occurs in haystack, ignoring case and accents
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(FoldAccents(haystack), FoldAccents(needle))
}

// DistinctSorted returns the distinct non-empty values in ascending order
func DistinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
