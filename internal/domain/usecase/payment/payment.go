package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// Gateway identifies a simulated payment provider
type Gateway string

const (
	GatewayPayPal Gateway = "paypal"
	GatewayCrypto Gateway = "crypto"
)

// CreateResult describes a payment awaiting execution
type CreateResult struct {
	PaymentID string
	Gateway   Gateway
	Amount    decimal.Decimal
	Currency  string
}

// ExecuteResult reports a confirmed payment and the credited balance
type ExecuteResult struct {
	PaymentID  string
	Gateway    Gateway
	NewBalance decimal.Decimal
}

// Service runs the simulated PayPal and crypto purchase flows. Real gateway
// integration is out of scope; a payment is fabricated on create and
// confirmed on execute, and only after confirmation does the ledger see a
// credit, so a gateway failure can never leave a partial ledger write.
type Service struct {
	ledger usecase.CreditLedger
	logger coreport.Logger
}

// NewService creates a payment service backed by the given ledger
func NewService(ledger usecase.CreditLedger, logger coreport.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger,
	}
}

// CreatePayment fabricates a pending payment with the given gateway and
// returns its identifier for the client to execute.
func (s *Service) CreatePayment(ctx context.Context, gateway Gateway, userID uint64, amount decimal.Decimal, currency string) (*CreateResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := entity.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", errs.ErrInvalidRequest)
	}

	var paymentID string
	switch gateway {
	case GatewayPayPal:
		paymentID = "PAY-" + uuid.NewString()
	case GatewayCrypto:
		paymentID = "CRYPTO-" + uuid.NewString()
	default:
		return nil, fmt.Errorf("%w: unknown payment gateway %q", errs.ErrInvalidRequest, gateway)
	}

	s.logger.Info("Simulated payment created", map[string]any{
		"user_id":    userID,
		"gateway":    string(gateway),
		"payment_id": paymentID,
		"amount":     entity.FormatAmount(amount),
		"currency":   currency,
	})

	return &CreateResult{
		PaymentID: paymentID,
		Gateway:   gateway,
		Amount:    amount,
		Currency:  currency,
	}, nil
}

// ExecutePayment confirms a previously created payment and credits the
// user's account with the purchase amount.
func (s *Service) ExecutePayment(ctx context.Context, gateway Gateway, paymentID string, userID uint64, amount decimal.Decimal) (*ExecuteResult, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment ID is required", errs.ErrInvalidRequest)
	}

	var txType entity.TransactionType
	var description string
	switch gateway {
	case GatewayPayPal:
		txType = entity.TypePayPalPurchase
		description = fmt.Sprintf("Credits purchased via PayPal: %s", paymentID)
	case GatewayCrypto:
		txType = entity.TypeCryptoPurchase
		description = fmt.Sprintf("Credits purchased via Crypto: %s", paymentID)
	default:
		return nil, fmt.Errorf("%w: unknown payment gateway %q", errs.ErrInvalidRequest, gateway)
	}

	result, err := s.ledger.AddCredit(ctx, userID, amount, txType, description, paymentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Simulated payment executed", map[string]any{
		"user_id":     userID,
		"gateway":     string(gateway),
		"payment_id":  paymentID,
		"amount":      entity.FormatAmount(amount),
		"new_balance": entity.FormatAmount(result.NewBalance),
	})

	return &ExecuteResult{
		PaymentID:  paymentID,
		Gateway:    gateway,
		NewBalance: result.NewBalance,
	}, nil
}
