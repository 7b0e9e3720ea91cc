package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/controller/admin"
	"standards-board-backend/internal/controller/application"
	"standards-board-backend/internal/controller/email"
	"standards-board-backend/internal/controller/position"
	"standards-board-backend/internal/metrics"
	"standards-board-backend/internal/middleware"
	"standards-board-backend/internal/model"
)

// maxBodyBytes bounds JSON request bodies; three positions with long answers fit well within it
const maxBodyBytes = 256 << 10

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.SafeHeader(s.Config.IsProduction()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	oauthConfig := auth.NewGoogleOauthConfig(s.Config.GoogleClientID, s.Config.GoogleClientSecret, s.Config.OAuthRedirectURL)
	gAuth := auth.NewOauthLoginHandler(s.DB, oauthConfig, s.Config.GoogleUserInfoURL, s.Tokens)
	logout := auth.NewLogoutController(s.Blacklist)

	applicationController := application.NewApplicationController(s.Service)
	emailController := email.NewEmailController(s.Service, s.Mailer)
	adminController := admin.NewAdminController(s.Service)
	positionController := position.NewPositionController(s.Catalog)

	limiter := middleware.RateLimiterMiddleware(uint(s.Config.RateLimitPerSecond), s.Redis)
	needAuth := []gin.HandlerFunc{middleware.RequireAuth(s.DB, s.Tokens), middleware.JwtBlacklistCheck(s.Blacklist)}

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			authRoute.POST("google", limiter, gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)
			authRoute.POST("logout", append(needAuth, logout.LogoutHandler)...)
			authRoute.GET("me", append(needAuth, auth.MeHandler)...)
		}

		positionRoute := api.Group("/positions")
		{
			positionRoute.GET("", positionController.ListPositions)
			positionRoute.GET(":id", positionController.GetPosition)
		}

		applicationRoute := api.Group("/applications", needAuth...)
		{
			applicationRoute.POST("submit", limiter, middleware.SizeLimit(maxBodyBytes), applicationController.SubmitHandler)
		}

		emailRoute := api.Group("/email")
		{
			emailRoute.POST("confirmation", middleware.InternalKey(s.Config.InternalAPIKey), emailController.ConfirmationHandler)
			emailRoute.POST("retry", append(needAuth, limiter, emailController.RetryHandler)...)
		}

		adminRoute := api.Group("/admin", needAuth...)
		{
			adminRoute.Use(middleware.CheckRole(model.RoleAdmin))
			adminRoute.GET("applications", adminController.ListApplications)
			adminRoute.GET("applications/:id", adminController.GetApplication)
			adminRoute.PATCH("applications/:id", middleware.SizeLimit(maxBodyBytes), adminController.UpdateApplication)
		}
	}

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
