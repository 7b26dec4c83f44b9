package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	creditHandler *handler.CreditHandler,
	paymentHandler *handler.PaymentHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	credits := api.Group("/credits")
	{
		credits.GET("/balance/:userId", creditHandler.GetBalance)
		credits.GET("/transactions/:userId", creditHandler.ListTransactions)
		credits.POST("/grant/:userId", creditHandler.GrantMonthlyCredit)
		credits.POST("/register/:userId", creditHandler.Register)
	}

	payments := api.Group("/payments")
	{
		payments.POST("/paypal/create-payment", paymentHandler.CreatePayPalPayment)
		payments.POST("/paypal/execute-payment", paymentHandler.ExecutePayPalPayment)
		payments.POST("/crypto/create-payment", paymentHandler.CreateCryptoPayment)
		payments.POST("/crypto/execute-payment", paymentHandler.ExecuteCryptoPayment)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
