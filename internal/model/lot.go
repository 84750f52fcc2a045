package model

import "strings"

// Lot represents one coffee batch from the dataset.
// Nil pointer fields mean the source value was missing or not numeric.
type Lot struct {
	Variety          string   `json:"variety" db:"coffee_variety"`
	Price            *float64 `json:"price,omitempty" db:"price"` // USD per pound
	QualityScore     *float64 `json:"quality_score,omitempty" db:"ranking"`
	HarvestYear      *int     `json:"harvest_year,omitempty" db:"year"`
	ProducerName     *string  `json:"producer_name,omitempty" db:"name"`
	Location         *string  `json:"location,omitempty" db:"location"`
	FlavorProperties *string  `json:"flavor_properties,omitempty" db:"properties"`
	CarbonCredits    *float64 `json:"carbon_credits,omitempty" db:"carbon_credits"`
}

// Producer returns the trimmed producer name and whether it is present.
func (l Lot) Producer() (string, bool) {
	if l.ProducerName == nil {
		return "", false
	}
	name := strings.TrimSpace(*l.ProducerName)
	return name, name != ""
}

// IsVariety reports whether the lot belongs to the given variety, ignoring case.
func (l Lot) IsVariety(variety string) bool {
	return strings.EqualFold(strings.TrimSpace(l.Variety), strings.TrimSpace(variety))
}

// IsProducer reports whether the lot was grown by the given producer, ignoring case.
func (l Lot) IsProducer(producer string) bool {
	if l.ProducerName == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*l.ProducerName), strings.TrimSpace(producer))
}
