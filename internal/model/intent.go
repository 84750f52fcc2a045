package model

// Intent is the closed category a user utterance is classified into
type Intent uint8

// Intent labels. IntentUnknown is never produced by the classifier; the router
// uses it for labels that have no registered resolver.
const (
	IntentUnknown Intent = iota
	IntentVariety
	IntentPrice
	IntentPriceMax
	IntentPriceMin
	IntentQuality
	IntentQualityMax
	IntentHarvestYear
	IntentProducerLocation
	IntentProperties
	IntentCarbonCredits
	IntentCarbonCreditsMax
	IntentGreeting
)

var intentNames = [...]string{
	IntentUnknown:          "unknown",
	IntentVariety:          "variety",
	IntentPrice:            "price",
	IntentPriceMax:         "price_max",
	IntentPriceMin:         "price_min",
	IntentQuality:          "quality",
	IntentQualityMax:       "quality_max",
	IntentHarvestYear:      "harvest_year",
	IntentProducerLocation: "producer_location",
	IntentProperties:       "properties",
	IntentCarbonCredits:    "carbon_credits",
	IntentCarbonCreditsMax: "carbon_credits_max",
	IntentGreeting:         "greeting",
}

// String returns the wire name of the intent
func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return intentNames[IntentUnknown]
}

// MarshalText implements encoding.TextMarshaler so intents serialize by name
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to IntentUnknown.
func (i *Intent) UnmarshalText(text []byte) error {
	*i, _ = ParseIntent(string(text))
	return nil
}

// ParseIntent returns the intent with the given wire name
func ParseIntent(name string) (Intent, bool) {
	for i, n := range intentNames {
		if n == name {
			return Intent(i), true
		}
	}
	return IntentUnknown, false
}

// KnownIntents returns every label the classifier can be trained on, in declaration order
func KnownIntents() []Intent {
	out := make([]Intent, 0, len(intentNames)-1)
	for i := IntentVariety; int(i) < len(intentNames); i++ {
		out = append(out, i)
	}
	return out
}
