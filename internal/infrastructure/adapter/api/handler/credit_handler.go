package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	domainerr "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
	"github.com/virtpanel/credit-ledger/internal/domain/usecase/registration"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// CreditHandler handles credit ledger HTTP requests
type CreditHandler struct {
	ledger       usecase.CreditLedger
	registration *registration.Service
	logger       coreport.Logger
}

// NewCreditHandler creates a new credit handler instance
func NewCreditHandler(
	ledger usecase.CreditLedger,
	registrationSvc *registration.Service,
	logger coreport.Logger,
) *CreditHandler {
	return &CreditHandler{
		ledger:       ledger,
		registration: registrationSvc,
		logger:       logger,
	}
}

// parseUserID extracts and validates the userId path parameter
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid user ID format"))
		return 0, false
	}
	return userID, true
}

// statusForError maps ledger errors to HTTP status codes
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domainerr.ErrInvalidAmount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainerr.ErrInvalidUserID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainerr.ErrInsufficientCredit):
		return http.StatusPaymentRequired, "Insufficient credits"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes a failure envelope for a ledger error
func respondError(c *gin.Context, err error) {
	status, message := statusForError(err)
	c.JSON(status, dto.Fail(message))
}

// GetBalance handles GET /api/credits/balance/:userId
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.ledger.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting user balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.BalanceData{
		UserID:  result.UserID,
		Balance: entity.FormatAmount(result.NewBalance),
	}))
}

// ListTransactions handles GET /api/credits/transactions/:userId
func (h *CreditHandler) ListTransactions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.ledger.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Error listing credit transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromTransactions(transactions)))
}

// GrantMonthlyCredit handles POST /api/credits/grant/:userId. Called by the
// monthly batch job and by admins.
func (h *CreditHandler) GrantMonthlyCredit(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.ledger.GrantMonthlyFreeCredit(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error granting monthly free credit", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	data := dto.GrantData{
		Granted:    result.Granted,
		NewBalance: entity.FormatAmount(result.NewBalance),
	}
	if result.Granted {
		data.Amount = entity.FormatAmount(result.Amount)
	}
	c.JSON(http.StatusOK, dto.OK(data))
}

// Register handles POST /api/credits/register/:userId, the credit side of
// user registration.
func (h *CreditHandler) Register(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.registration.RegisterAccount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error registering credit account", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.RegistrationData{
		UserID:  result.UserID,
		Granted: result.Granted,
		Balance: entity.FormatAmount(result.Balance),
	}))
}
