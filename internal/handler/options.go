package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// OptionsHandler lists the values a purchase form can offer
type OptionsHandler struct {
	store *dataset.Store
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(store *dataset.Store) *OptionsHandler {
	return &OptionsHandler{store: store}
}

// Options handles GET /api/v1/options
func (h *OptionsHandler) Options(c *gin.Context) {
	resp := model.OptionsResponse{
		Varieties:  h.store.UniqueVarieties(),
		Years:      h.store.UniqueYears(),
		Units:      []string{model.UnitPound, model.UnitKilogram},
		Currencies: []string{model.CurrencyUSD, model.CurrencyCOP},
	}

	if variety := strings.TrimSpace(c.Query("variety")); variety != "" {
		if !h.store.HasVariety(variety) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variety not found"})
			return
		}
		resp.Producers = h.store.ProducersFor(variety)
		resp.Properties = h.store.PropertiesFor(variety)
	}

	c.JSON(http.StatusOK, resp)
}
