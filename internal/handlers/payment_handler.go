package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/services"
)

type PaymentIntentRequest struct {
	Price any `json:"price"`
}

func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	price, err := services.ParsePrice(req.Price)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	secret, err := h.payments.CreatePaymentIntent(ctx, price)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
