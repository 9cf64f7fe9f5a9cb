package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/interfaces/http/handlers"
	"moto-club.backend/internal/interfaces/http/middleware"
	"moto-club.backend/internal/interfaces/http/response"
	"moto-club.backend/pkg/metrics"
)

const serviceName = "moto-club-backend"

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	rideHandler        *handlers.RideHandler
	adminHandler       *handlers.AdminHandler
	alertHandler       *handlers.AlertHandler
	dashboardHandler   *handlers.DashboardHandler
	userHandler        *handlers.UserHandler
	leaderboardHandler *handlers.LeaderboardHandler
	authMiddleware     gin.HandlerFunc
	idempotency        gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	r.Use(middleware.CORSMiddleware(origins))
}

func registerHealthRoute(r *gin.Engine, version string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": version,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerFallbacks(r *gin.Engine) {
	r.NoRoute(func(c *gin.Context) {
		response.ErrorWithStatus(c, http.StatusNotFound, domainerrors.CodeNotFound, "Route not found.")
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	idempotency := d.idempotency
	if idempotency == nil {
		idempotency = func(c *gin.Context) { c.Next() }
	}

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authHandler.Logout)
		}

		// Every other route requires an identity
		protected := v1.Group("")
		protected.Use(d.authMiddleware)

		rides := protected.Group("/rides")
		{
			rides.GET("", d.rideHandler.ListRides)
			rides.POST("", d.rideHandler.CreateRide)
			rides.GET("/:id", d.rideHandler.GetRide)
			rides.POST("/:id/join", idempotency, d.rideHandler.JoinRide)
			rides.POST("/:id/leave", d.rideHandler.LeaveRide)
			rides.POST("/:id/photos", d.rideHandler.AddPhoto)
		}

		me := protected.Group("/users/me")
		{
			me.GET("", d.userHandler.GetMe)
			me.PATCH("", d.userHandler.UpdateMe)
			me.GET("/rides", d.rideHandler.ListMyRides)
			me.GET("/achievements", d.userHandler.ListMyAchievements)
		}

		protected.GET("/achievements", d.userHandler.ListAchievements)
		protected.GET("/leaderboard", d.leaderboardHandler.GetLeaderboard)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/verify", d.adminHandler.VerifyUser)
			admin.PATCH("/users/:id/safety-rating", d.adminHandler.UpdateSafetyRating)

			admin.GET("/rides/pending", d.adminHandler.ListPendingRides)
			admin.PATCH("/rides/:id/approve", d.adminHandler.ApproveRide)
			admin.PATCH("/rides/:id/reject", d.adminHandler.RejectRide)

			admin.GET("/alerts", d.alertHandler.ListAlerts)
			admin.POST("/alerts", d.alertHandler.CreateAlert)
			admin.PATCH("/alerts/:id/status", d.alertHandler.UpdateAlertStatus)

			admin.GET("/dashboard/stats", d.dashboardHandler.GetStats)
			admin.GET("/dashboard/recent-rides", d.dashboardHandler.GetRecentRides)
			admin.GET("/dashboard/monthly-rides-volume", d.dashboardHandler.GetMonthlyRideVolume)
			admin.GET("/dashboard/chapter-activity", d.dashboardHandler.GetChapterActivity)
		}
	}
}
