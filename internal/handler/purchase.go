package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

const unreadableForm = "Por favor revisa el formulario: no pudimos leer los datos enviados."

// PurchaseLedger stores and lists priced purchases
type PurchaseLedger interface {
	RecordPurchase(ctx context.Context, q *model.Quote) error
	RecentPurchases(ctx context.Context, limit int) ([]model.Quote, int, error)
}

// PurchaseHandler handles purchase pricing and the purchase ledger
type PurchaseHandler struct {
	calculator   *service.Calculator
	ledger       PurchaseLedger // nil when no database is configured
	defaultLimit int
	maxLimit     int
}

// NewPurchaseHandler creates a new purchase handler. ledger may be nil.
func NewPurchaseHandler(calculator *service.Calculator, ledger PurchaseLedger, defaultLimit, maxLimit int) *PurchaseHandler {
	return &PurchaseHandler{
		calculator:   calculator,
		ledger:       ledger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Purchase handles POST /api/v1/purchase
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var form model.PurchaseForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Debug("Unreadable purchase request")
		c.JSON(http.StatusBadRequest, model.PurchaseResponse{
			Summary: unreadableForm,
			Error:   "invalid request body",
		})
		return
	}

	quote, err := h.calculator.Quote(form)
	if err != nil {
		resp := model.PurchaseResponse{Summary: service.DescribeError(err), Error: err.Error()}
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			resp.Error = verr.Message
			resp.Field = verr.Field
			c.JSON(http.StatusUnprocessableEntity, resp)
		case errors.Is(err, service.ErrNoPricingData):
			c.JSON(http.StatusUnprocessableEntity, resp)
		default:
			c.JSON(http.StatusInternalServerError, resp)
		}
		return
	}

	// A ledger failure does not undo the quote
	if h.ledger != nil {
		if err := h.ledger.RecordPurchase(c.Request.Context(), quote); err != nil {
			logrus.WithError(err).WithField("quote_id", quote.ID).Error("Failed to record purchase")
		}
	}

	c.JSON(http.StatusOK, model.PurchaseResponse{
		Summary: service.Summary(quote),
		Quote:   quote,
	})
}

// List handles GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Purchase ledger is disabled"})
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	purchases, total, err := h.ledger.RecentPurchases(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.PurchaseListResponse{Purchases: purchases, Total: total})
}
