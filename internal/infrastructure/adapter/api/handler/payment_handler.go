package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/payment"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// PaymentHandler handles simulated payment HTTP requests
type PaymentHandler struct {
	payments *payment.Service
	logger   coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments *payment.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// CreatePayPalPayment handles POST /api/payments/paypal/create-payment
func (h *PaymentHandler) CreatePayPalPayment(c *gin.Context) {
	h.createPayment(c, payment.GatewayPayPal)
}

// CreateCryptoPayment handles POST /api/payments/crypto/create-payment
func (h *PaymentHandler) CreateCryptoPayment(c *gin.Context) {
	h.createPayment(c, payment.GatewayCrypto)
}

func (h *PaymentHandler) createPayment(c *gin.Context, gateway payment.Gateway) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("User ID, amount, and currency are required"))
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.payments.CreatePayment(c.Request.Context(), gateway, req.UserID, amount, req.Currency)
	if err != nil {
		h.logger.Error("Payment creation failed", map[string]any{
			"user_id": req.UserID,
			"gateway": string(gateway),
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.CreatePaymentData{
		PaymentID: result.PaymentID,
		Gateway:   string(result.Gateway),
		Amount:    entity.FormatAmount(result.Amount),
		Currency:  result.Currency,
	}))
}

// ExecutePayPalPayment handles POST /api/payments/paypal/execute-payment
func (h *PaymentHandler) ExecutePayPalPayment(c *gin.Context) {
	var req dto.ExecutePayPalPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Payment ID, Payer ID, User ID, and amount are required"))
		return
	}
	h.executePayment(c, payment.GatewayPayPal, req.PaymentID, req.UserID, req.Amount)
}

// ExecuteCryptoPayment handles POST /api/payments/crypto/execute-payment
func (h *PaymentHandler) ExecuteCryptoPayment(c *gin.Context) {
	var req dto.ExecuteCryptoPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Payment ID, transaction details, User ID, and amount are required"))
		return
	}
	h.executePayment(c, payment.GatewayCrypto, req.PaymentID, req.UserID, req.Amount)
}

func (h *PaymentHandler) executePayment(c *gin.Context, gateway payment.Gateway, paymentID string, userID uint64, rawAmount string) {
	amount, err := entity.ParseAmount(rawAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.payments.ExecutePayment(c.Request.Context(), gateway, paymentID, userID, amount)
	if err != nil {
		h.logger.Error("Payment execution failed", map[string]any{
			"user_id":    userID,
			"gateway":    string(gateway),
			"payment_id": paymentID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ExecutePaymentData{
		PaymentID:  result.PaymentID,
		Gateway:    string(result.Gateway),
		NewBalance: entity.FormatAmount(result.NewBalance),
	}))
}
