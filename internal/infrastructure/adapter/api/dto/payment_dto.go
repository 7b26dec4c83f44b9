package dto

// CreatePaymentRequest initiates a simulated payment
type CreatePaymentRequest struct {
	UserID   uint64 `json:"userId" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// CreatePaymentData describes a payment awaiting execution
type CreatePaymentData struct {
	PaymentID string `json:"paymentId"`
	Gateway   string `json:"gateway"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// ExecutePayPalPaymentRequest confirms a simulated PayPal payment
type ExecutePayPalPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	PayerID   string `json:"payerId" binding:"required"`
	UserID    uint64 `json:"userId" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// ExecuteCryptoPaymentRequest confirms a simulated crypto payment
type ExecuteCryptoPaymentRequest struct {
	PaymentID          string `json:"paymentId" binding:"required"`
	TransactionDetails string `json:"transactionDetails" binding:"required"`
	UserID             uint64 `json:"userId" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
}

// ExecutePaymentData reports a confirmed payment and the credited balance
type ExecutePaymentData struct {
	PaymentID  string `json:"paymentId"`
	Gateway    string `json:"gateway"`
	NewBalance string `json:"newBalance"`
}
