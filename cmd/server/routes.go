package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trivix-payroll.backend/internal/interfaces/http/handlers"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "trivix-payroll-backend"
	serviceVersion = "0.1.0"

	healthPath  = "/health"
	metricsPath = "/metrics"
)

type routeDeps struct {
	payrollHandler  *handlers.PayrollHandler
	payeeHandler    *handlers.PayeeHandler
	scheduleHandler *handlers.ScheduleHandler
	historyHandler  *handlers.HistoryHandler
	authMiddleware  gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Invite links land here before the payee has any session
		v1.POST("/connect/:businessId/:payeeId", d.payeeHandler.ConnectWallet)

		payees := v1.Group("/payees")
		payees.Use(d.authMiddleware)
		{
			payees.POST("", middleware.RequireOwner(), d.payeeHandler.CreatePayee)
			payees.GET("", d.payeeHandler.ListPayees)
			payees.PATCH("/:id/status", middleware.RequireOwner(), d.payeeHandler.UpdateStatus)
		}

		payroll := v1.Group("/payroll")
		payroll.Use(d.authMiddleware)
		{
			payroll.POST("/workers", middleware.RequireOwner(), middleware.IdempotencyMiddleware(), d.payrollHandler.PayWorkers)
			payroll.POST("/contractors/:id", middleware.RequireOwner(), middleware.IdempotencyMiddleware(), d.payrollHandler.PayContractor)
			payroll.GET("/schedule", d.scheduleHandler.GetSchedule)
			payroll.PUT("/schedule", middleware.RequireOwner(), d.scheduleHandler.UpdateSchedule)
		}

		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.GET("", d.payrollHandler.ListPayments)
			payments.GET("/stale", d.payrollHandler.ListStalePayments)
			payments.GET("/:id", d.payrollHandler.GetPayment)
			payments.POST("/:id/cancel", d.payrollHandler.CancelPayment)
		}

		history := v1.Group("/history")
		history.Use(d.authMiddleware)
		{
			history.GET("", d.historyHandler.ListHistory)
			history.POST("/pool-transfers", middleware.IdempotencyMiddleware(), d.historyHandler.RecordPoolTransfer)
		}
	}
}

// registerInternalRoutes exposes endpoints for the external scheduler
func registerInternalRoutes(r *gin.Engine, sweepHandler *handlers.SweepHandler, guard gin.HandlerFunc) {
	internal := r.Group("/internal")
	internal.Use(guard)
	{
		internal.POST("/payroll/sweep", sweepHandler.RunSweep)
	}
}
