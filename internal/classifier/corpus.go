package classifier

import "github.com/Andrela2025/Agro-Conecta/internal/model"

// TrainingExample pairs a sample utterance with its intent
type TrainingExample struct {
	Utterance string
	Label     model.Intent
}

var defaultCorpus = []TrainingExample{
	{"qué variedades de café tienen", model.IntentVariety},
	{"cuáles son las variedades disponibles", model.IntentVariety},
	{"qué tipos de café venden", model.IntentVariety},
	{"muéstrame los tipos de café", model.IntentVariety},
	{"lista de variedades", model.IntentVariety},
	{"qué cafés manejan", model.IntentVariety},
	{"con qué variedades trabajan", model.IntentVariety},
	{"tipo de café disponible", model.IntentVariety},

	{"cuánto cuesta el caturra", model.IntentPrice},
	{"cuál es el precio del geisha", model.IntentPrice},
	{"precio de la variedad castillo", model.IntentPrice},
	{"cuánto vale el café bourbon", model.IntentPrice},
	{"qué precio tiene el típica", model.IntentPrice},
	{"dime el precio por libra de una variedad", model.IntentPrice},
	{"cuánto cuesta una libra", model.IntentPrice},
	{"precios del café", model.IntentPrice},

	{"cuál es el café más caro", model.IntentPriceMax},
	{"el precio más alto", model.IntentPriceMax},
	{"qué café es el más costoso", model.IntentPriceMax},
	{"café de mayor precio", model.IntentPriceMax},
	{"cuál lote cuesta más", model.IntentPriceMax},
	{"el más caro de todos", model.IntentPriceMax},

	{"cuál es el café más barato", model.IntentPriceMin},
	{"el precio más bajo", model.IntentPriceMin},
	{"qué café es el más económico", model.IntentPriceMin},
	{"café de menor precio", model.IntentPriceMin},
	{"cuál lote cuesta menos", model.IntentPriceMin},
	{"el más barato de todos", model.IntentPriceMin},

	{"cuál es la calidad del café", model.IntentQuality},
	{"calidad promedio", model.IntentQuality},
	{"qué puntaje de calidad tienen", model.IntentQuality},
	{"cómo es la calidad de sus cafés", model.IntentQuality},
	{"puntaje promedio de los lotes", model.IntentQuality},
	{"qué tan bueno es su café", model.IntentQuality},

	{"cuál es el café de mejor calidad", model.IntentQualityMax},
	{"el mejor café", model.IntentQualityMax},
	{"qué café tiene el puntaje más alto", model.IntentQualityMax},
	{"el café mejor calificado", model.IntentQualityMax},
	{"lote con mayor puntaje", model.IntentQualityMax},
	{"cuál es el mejor lote", model.IntentQualityMax},

	{"de qué año es la cosecha", model.IntentHarvestYear},
	{"años de cosecha", model.IntentHarvestYear},
	{"cuándo se cosechó el café", model.IntentHarvestYear},
	{"qué cosechas tienen", model.IntentHarvestYear},
	{"en qué año se recogió", model.IntentHarvestYear},
	{"año de la cosecha disponible", model.IntentHarvestYear},

	{"quiénes son los productores", model.IntentProducerLocation},
	{"dónde se cultiva el café", model.IntentProducerLocation},
	{"de dónde viene el café", model.IntentProducerLocation},
	{"quién produce el café", model.IntentProducerLocation},
	{"ubicación de las fincas", model.IntentProducerLocation},
	{"háblame de los campesinos", model.IntentProducerLocation},
	{"en qué región están los productores", model.IntentProducerLocation},
	{"productor y ubicación", model.IntentProducerLocation},

	{"qué sabor tiene el café", model.IntentProperties},
	{"cuáles son las propiedades del café", model.IntentProperties},
	{"notas de sabor", model.IntentProperties},
	{"cómo es el aroma", model.IntentProperties},
	{"perfil de taza", model.IntentProperties},
	{"características de cada variedad", model.IntentProperties},
	{"a qué sabe el geisha", model.IntentProperties},

	{"cuántos créditos de carbono generan", model.IntentCarbonCredits},
	{"créditos de carbono por productor", model.IntentCarbonCredits},
	{"información de créditos de carbono", model.IntentCarbonCredits},
	{"cuánto carbono compensan", model.IntentCarbonCredits},
	{"bonos de carbono", model.IntentCarbonCredits},
	{"huella de carbono de los productores", model.IntentCarbonCredits},

	{"quién tiene más créditos de carbono", model.IntentCarbonCreditsMax},
	{"productor con más créditos", model.IntentCarbonCreditsMax},
	{"mayor cantidad de créditos de carbono", model.IntentCarbonCreditsMax},
	{"cuál productor genera más carbono", model.IntentCarbonCreditsMax},
	{"el que más bonos de carbono tiene", model.IntentCarbonCreditsMax},
	{"máximo de créditos de carbono", model.IntentCarbonCreditsMax},

	{"hola", model.IntentGreeting},
	{"buenos días", model.IntentGreeting},
	{"buenas tardes", model.IntentGreeting},
	{"buenas noches", model.IntentGreeting},
	{"qué tal", model.IntentGreeting},
	{"hola cómo estás", model.IntentGreeting},
	{"saludos", model.IntentGreeting},
	{"hey buenas", model.IntentGreeting},
}

// DefaultCorpus returns a copy of the built-in labeled phrases
func DefaultCorpus() []TrainingExample {
	out := make([]TrainingExample, len(defaultCorpus))
	copy(out, defaultCorpus)
	return out
}
