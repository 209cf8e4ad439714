package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wash-loop.backend/internal/interfaces/http/handlers"
	"wash-loop.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	walletHandler   *handlers.WalletHandler
	loyaltyHandler  *handlers.LoyaltyHandler
	referralHandler *handlers.ReferralHandler
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Wallet ledger routes
		wallets := v1.Group("/wallets")
		{
			wallets.POST("/credit", middleware.IdempotencyMiddleware(), d.walletHandler.Credit)
			wallets.POST("/debit", middleware.IdempotencyMiddleware(), d.walletHandler.Debit)
			wallets.GET("/:userId/balance", d.walletHandler.GetBalance)
			wallets.GET("/:userId/transactions", d.walletHandler.ListTransactions)
		}

		// Loyalty point routes
		loyalty := v1.Group("/loyalty")
		{
			loyalty.POST("/points", middleware.IdempotencyMiddleware(), d.loyaltyHandler.GrantPoints)
			loyalty.POST("/redeem", middleware.IdempotencyMiddleware(), d.loyaltyHandler.Redeem)
			loyalty.GET("/:userId/balance", d.loyaltyHandler.GetBalance)
			loyalty.GET("/:userId/history", d.loyaltyHandler.History)
		}

		// Referral routes
		referrals := v1.Group("/referrals")
		{
			referrals.POST("", middleware.IdempotencyMiddleware(), d.referralHandler.Create)
			referrals.POST("/apply", middleware.IdempotencyMiddleware(), d.referralHandler.Apply)
			referrals.POST("/:id/credit", middleware.IdempotencyMiddleware(), d.referralHandler.Credit)
		}
	}
}
