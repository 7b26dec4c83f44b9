package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	domainerr "github.com/virtpanel/credit-ledger/internal/domain/error"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/payment"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/registration"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/logger"
)

// fakeLedger serves handler tests with canned ledger behavior.
type fakeLedger struct {
	usecase.CreditLedger

	balance      decimal.Decimal
	balanceErr   error
	grantResult  *usecase.GrantResult
	grantErr     error
	transactions []*entity.Transaction
	listErr      error
	listLimit    int
	listOffset   int
	addCreditErr error
}

func (f *fakeLedger) GetBalance(ctx context.Context, userID uint64) (*usecase.BalanceResult, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return &usecase.BalanceResult{UserID: userID, NewBalance: f.balance}, nil
}

func (f *fakeLedger) GrantMonthlyFreeCredit(ctx context.Context, userID uint64) (*usecase.GrantResult, error) {
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	result := *f.grantResult
	return &result, nil
}

func (f *fakeLedger) EnsureAccount(ctx context.Context, userID uint64) (*entity.Account, error) {
	return &entity.Account{UserID: userID, Balance: f.balance}, nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	f.listLimit = limit
	f.listOffset = offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func (f *fakeLedger) AddCredit(ctx context.Context, userID uint64, amount decimal.Decimal, txType entity.TransactionType, description, gatewayRef string) (*usecase.BalanceResult, error) {
	if f.addCreditErr != nil {
		return nil, f.addCreditErr
	}
	return &usecase.BalanceResult{UserID: userID, NewBalance: f.balance.Add(amount)}, nil
}

func newTestRouter(ledger *fakeLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	registrationSvc := registration.NewService(ledger, logger.NewNoopLogger())
	paymentSvc := payment.NewService(ledger, logger.NewNoopLogger())

	creditHandler := handler.NewCreditHandler(ledger, registrationSvc, logger.NewNoopLogger())
	paymentHandler := handler.NewPaymentHandler(paymentSvc, logger.NewNoopLogger())
	routes.SetupRoutes(router, creditHandler, paymentHandler)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestGetBalanceEndpoint(t *testing.T) {
	t.Run("Returns formatted balance", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{balance: decimal.RequireFromString("5.5")})

		recorder := doRequest(router, http.MethodGet, "/api/credits/balance/42", "")
		assert.Equal(t, http.StatusOK, recorder.Code)

		payload := decodeEnvelope(t, recorder)
		assert.Equal(t, true, payload["success"])
		data := payload["data"].(map[string]any)
		assert.Equal(t, float64(42), data["userId"])
		assert.Equal(t, "5.5000", data["balance"])
	})

	t.Run("Malformed user ID", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{})

		for _, id := range []string{"abc", "0", "-3"} {
			recorder := doRequest(router, http.MethodGet, "/api/credits/balance/"+id, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code, "id %s", id)

			payload := decodeEnvelope(t, recorder)
			assert.Equal(t, false, payload["success"])
			assert.Equal(t, "Invalid user ID format", payload["message"])
		}
	})

	t.Run("Persistence failure maps to 500", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{
			balanceErr: domainerr.NewPersistenceError("ensure_account", 42, "", errors.New("down")),
		})

		recorder := doRequest(router, http.MethodGet, "/api/credits/balance/42", "")
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		payload := decodeEnvelope(t, recorder)
		assert.Equal(t, false, payload["success"])
		assert.Equal(t, "Internal server error", payload["message"])
	})
}

func TestListTransactionsEndpoint(t *testing.T) {
	t.Run("Passes pagination through and serializes entries", func(t *testing.T) {
		ledger := &fakeLedger{
			transactions: []*entity.Transaction{
				{ID: 2, UserID: 42, Amount: decimal.RequireFromString("-4.5"), Type: entity.TypeUsageDeduction, Status: entity.StatusCompleted},
				{ID: 1, UserID: 42, Amount: decimal.RequireFromString("10"), Type: entity.TypePurchase, Status: entity.StatusCompleted, PaymentGatewayID: "PAY-abc"},
			},
		}
		router := newTestRouter(ledger)

		recorder := doRequest(router, http.MethodGet, "/api/credits/transactions/42?limit=5&offset=10", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 5, ledger.listLimit)
		assert.Equal(t, 10, ledger.listOffset)

		payload := decodeEnvelope(t, recorder)
		entries := payload["data"].([]any)
		require.Len(t, entries, 2)

		first := entries[0].(map[string]any)
		assert.Equal(t, "-4.5000", first["amount"])
		assert.Equal(t, "usage_deduction", first["type"])
		_, hasGateway := first["paymentGatewayId"]
		assert.False(t, hasGateway)

		second := entries[1].(map[string]any)
		assert.Equal(t, "PAY-abc", second["paymentGatewayId"])
	})

	t.Run("Missing query parameters default to zero", func(t *testing.T) {
		ledger := &fakeLedger{}
		router := newTestRouter(ledger)

		recorder := doRequest(router, http.MethodGet, "/api/credits/transactions/42", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 0, ledger.listLimit)
		assert.Equal(t, 0, ledger.listOffset)
	})

	t.Run("Empty history yields empty data array", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{transactions: []*entity.Transaction{}})

		recorder := doRequest(router, http.MethodGet, "/api/credits/transactions/42", "")
		payload := decodeEnvelope(t, recorder)
		entries := payload["data"].([]any)
		assert.Empty(t, entries)
	})
}

func TestGrantEndpoint(t *testing.T) {
	t.Run("Granted response includes the amount", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{grantResult: &usecase.GrantResult{
			Granted:    true,
			Amount:     decimal.RequireFromString("5"),
			NewBalance: decimal.RequireFromString("5"),
		}})

		recorder := doRequest(router, http.MethodPost, "/api/credits/grant/42", "")
		assert.Equal(t, http.StatusOK, recorder.Code)

		payload := decodeEnvelope(t, recorder)
		data := payload["data"].(map[string]any)
		assert.Equal(t, true, data["granted"])
		assert.Equal(t, "5.0000", data["amount"])
		assert.Equal(t, "5.0000", data["newBalance"])
	})

	t.Run("Already granted omits the amount", func(t *testing.T) {
		router := newTestRouter(&fakeLedger{grantResult: &usecase.GrantResult{
			Granted:    false,
			NewBalance: decimal.RequireFromString("5"),
		}})

		recorder := doRequest(router, http.MethodPost, "/api/credits/grant/42", "")
		assert.Equal(t, http.StatusOK, recorder.Code)

		payload := decodeEnvelope(t, recorder)
		data := payload["data"].(map[string]any)
		assert.Equal(t, false, data["granted"])
		_, hasAmount := data["amount"]
		assert.False(t, hasAmount)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(&fakeLedger{grantResult: &usecase.GrantResult{
		Granted:    true,
		Amount:     decimal.RequireFromString("5"),
		NewBalance: decimal.RequireFromString("5"),
	}})

	recorder := doRequest(router, http.MethodPost, "/api/credits/register/42", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeEnvelope(t, recorder)
	data := payload["data"].(map[string]any)
	assert.Equal(t, float64(42), data["userId"])
	assert.Equal(t, true, data["granted"])
	assert.Equal(t, "5.0000", data["balance"])
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Invalid amount", domainerr.ErrInvalidAmount, http.StatusBadRequest, "invalid amount"},
		{"Invalid user ID", domainerr.ErrInvalidUserID, http.StatusBadRequest, "user ID must be positive"},
		{"Invalid request", domainerr.ErrInvalidRequest, http.StatusBadRequest, "invalid request"},
		{"Insufficient credit", domainerr.NewInsufficientCreditError(42, "10.0000", "5.5000"), http.StatusPaymentRequired, "Insufficient credits"},
		{"Persistence", domainerr.NewPersistenceError("add_credit", 42, "", errors.New("down")), http.StatusInternalServerError, "Internal server error"},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := handler.StatusForError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}
