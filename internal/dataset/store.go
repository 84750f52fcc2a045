// Package dataset loads the coffee-lot table and answers read-only queries over it.
//
// A Store is immutable after construction and may be shared across goroutines.
package dataset

import (
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/utils"
)

// Store holds the working set of lots for the process lifetime
type Store struct {
	lots []model.Lot
}

// New creates a Store from typed lots, dropping lots without a variety
func New(lots []model.Lot) *Store {
	kept := make([]model.Lot, 0, len(lots))
	for _, lot := range lots {
		lot.Variety = strings.TrimSpace(lot.Variety)
		if lot.Variety == "" {
			continue
		}
		kept = append(kept, lot)
	}
	return &Store{lots: kept}
}

// Len returns the number of lots in the working set
func (s *Store) Len() int {
	return len(s.lots)
}

// Lots returns a copy of the working set in dataset order
func (s *Store) Lots() []model.Lot {
	return slices.Clone(s.lots)
}

// UniqueVarieties returns the distinct varieties, sorted ascending and case-preserving
func (s *Store) UniqueVarieties() []string {
	names := make([]string, len(s.lots))
	for i, lot := range s.lots {
		names[i] = lot.Variety
	}
	return utils.DistinctSorted(names)
}

// UniqueYears returns the distinct non-missing harvest years in ascending order
func (s *Store) UniqueYears() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, lot := range s.lots {
		if lot.HarvestYear == nil {
			continue
		}
		if _, ok := seen[*lot.HarvestYear]; ok {
			continue
		}
		seen[*lot.HarvestYear] = struct{}{}
		out = append(out, *lot.HarvestYear)
	}
	sort.Ints(out)
	return out
}

// RowsMatching lazily yields the lots accepted by pred, in dataset order
func (s *Store) RowsMatching(pred func(model.Lot) bool) iter.Seq[model.Lot] {
	return func(yield func(model.Lot) bool) {
		for _, lot := range s.lots {
			if pred != nil && !pred(lot) {
				continue
			}
			if !yield(lot) {
				return
			}
		}
	}
}

// GroupSum sums field per grouping key. Lots with a missing key or field are skipped.
func (s *Store) GroupSum(by func(model.Lot) (string, bool), field func(model.Lot) *float64) map[string]float64 {
	sums := make(map[string]float64)
	for _, lot := range s.lots {
		key, ok := by(lot)
		if !ok {
			continue
		}
		v := field(lot)
		if v == nil {
			continue
		}
		sums[key] += *v
	}
	return sums
}

// ProducersFor returns the distinct producers that grow the variety
func (s *Store) ProducersFor(variety string) []string {
	var names []string
	for lot := range s.RowsMatching(func(l model.Lot) bool { return l.IsVariety(variety) }) {
		if name, ok := lot.Producer(); ok {
			names = append(names, name)
		}
	}
	return utils.DistinctSorted(names)
}

// PropertiesFor returns the distinct flavor descriptions recorded for the variety
func (s *Store) PropertiesFor(variety string) []string {
	var props []string
	for lot := range s.RowsMatching(func(l model.Lot) bool { return l.IsVariety(variety) }) {
		if lot.FlavorProperties != nil {
			props = append(props, *lot.FlavorProperties)
		}
	}
	return utils.DistinctSorted(props)
}

// HasVariety reports whether any lot belongs to the variety, ignoring case
func (s *Store) HasVariety(variety string) bool {
	for range s.RowsMatching(func(l model.Lot) bool { return l.IsVariety(variety) }) {
		return true
	}
	return false
}
