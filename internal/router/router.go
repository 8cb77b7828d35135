package router

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/config"
	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/handlers"
	"github.com/venturescope/venturescope-backend/internal/mailer"
	"github.com/venturescope/venturescope-backend/internal/middleware"
	"github.com/venturescope/venturescope-backend/internal/services"
	"github.com/venturescope/venturescope-backend/internal/services/auth"
	"github.com/venturescope/venturescope-backend/internal/whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with the full API surface
func SetupRouter(db *gorm.DB, cfg *config.Config, mailClient *mailer.Client, whatsappClient *whatsapp.Client) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Services
	authService := auth.NewAuthService(db, cfg.JWT, cfg.Google, mailClient)
	newsletterService := services.NewNewsletterService(
		repository.NewNewsletterRepository(db),
		repository.NewUserRepository(db),
		mailClient,
		dispatch.NewIntervalPacer(dispatch.DefaultInterval),
		cfg.Mailer.PublicBaseURL,
	)
	broadcastService := services.NewBroadcastService(
		repository.NewBroadcastRepository(db),
		repository.NewSubscriptionRepository(db),
		whatsappClient,
		dispatch.NewIntervalPacer(dispatch.DefaultInterval),
		cfg.Mailer.PublicBaseURL,
	)

	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	acceleratorHandler := handlers.NewAcceleratorHandler(db)
	incubatorHandler := handlers.NewIncubatorHandler(db)
	angelHandler := handlers.NewAngelHandler(db)
	vcHandler := handlers.NewVCHandler(db)
	microVCHandler := handlers.NewMicroVCHandler(db)
	grantHandler := handlers.NewGrantHandler(db)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, whatsappClient)
	adminHandler := handlers.NewAdminHandler(db, whatsappClient)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/otp/request", authHandler.RequestOTP)
			authRoutes.POST("/otp/verify", authHandler.VerifyOTP)
			authRoutes.POST("/google", authHandler.GoogleLogin)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
		}

		// Public catalog reads
		api.GET("/accelerators", acceleratorHandler.ListAccelerators)
		api.GET("/accelerators/:id", acceleratorHandler.GetAccelerator)
		api.GET("/incubators", incubatorHandler.ListIncubators)
		api.GET("/incubators/:id", incubatorHandler.GetIncubator)
		api.GET("/angels", angelHandler.ListAngelInvestors)
		api.GET("/angels/:id", angelHandler.GetAngelInvestor)
		api.GET("/vcs", vcHandler.ListVentureCapitals)
		api.GET("/vcs/:id", vcHandler.GetVentureCapital)
		api.GET("/micro-vcs", microVCHandler.ListMicroVCs)
		api.GET("/micro-vcs/:id", microVCHandler.GetMicroVC)
		api.GET("/grants", grantHandler.ListGrants)
		api.GET("/grants/:id", grantHandler.GetGrant)

		// Public opt-in and opt-out
		api.POST("/whatsapp/subscribe", subscriptionHandler.SubscribeWhatsApp)
		api.GET("/whatsapp/opt-out", subscriptionHandler.OptOutWhatsApp)
		api.GET("/newsletter/unsubscribe", subscriptionHandler.UnsubscribeNewsletter)

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/me", authHandler.Me)
			}

			protected.PUT("/newsletter/preference", subscriptionHandler.UpdateNewsletterPreference)

			// Admin routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// Catalog writes
				admin.POST("/accelerators", acceleratorHandler.CreateAccelerator)
				admin.PUT("/accelerators/:id", acceleratorHandler.UpdateAccelerator)
				admin.DELETE("/accelerators/:id", acceleratorHandler.DeleteAccelerator)
				admin.POST("/incubators", incubatorHandler.CreateIncubator)
				admin.PUT("/incubators/:id", incubatorHandler.UpdateIncubator)
				admin.DELETE("/incubators/:id", incubatorHandler.DeleteIncubator)
				admin.POST("/angels", angelHandler.CreateAngelInvestor)
				admin.PUT("/angels/:id", angelHandler.UpdateAngelInvestor)
				admin.DELETE("/angels/:id", angelHandler.DeleteAngelInvestor)
				admin.POST("/vcs", vcHandler.CreateVentureCapital)
				admin.PUT("/vcs/:id", vcHandler.UpdateVentureCapital)
				admin.DELETE("/vcs/:id", vcHandler.DeleteVentureCapital)
				admin.POST("/micro-vcs", microVCHandler.CreateMicroVC)
				admin.PUT("/micro-vcs/:id", microVCHandler.UpdateMicroVC)
				admin.DELETE("/micro-vcs/:id", microVCHandler.DeleteMicroVC)
				admin.POST("/grants", grantHandler.CreateGrant)
				admin.PUT("/grants/:id", grantHandler.UpdateGrant)
				admin.DELETE("/grants/:id", grantHandler.DeleteGrant)

				// Newsletter campaigns
				newsletters := admin.Group("/newsletters")
				{
					newsletters.POST("", newsletterHandler.CreateNewsletter)
					newsletters.GET("", newsletterHandler.ListNewsletters)
					newsletters.GET("/:id", newsletterHandler.GetNewsletter)
					newsletters.PUT("/:id", newsletterHandler.UpdateNewsletter)
					newsletters.DELETE("/:id", newsletterHandler.DeleteNewsletter)
					newsletters.POST("/:id/send", newsletterHandler.SendNewsletter)
				}

				// WhatsApp broadcasts
				broadcasts := admin.Group("/broadcasts")
				{
					broadcasts.POST("", broadcastHandler.CreateBroadcast)
					broadcasts.GET("", broadcastHandler.ListBroadcasts)
					broadcasts.GET("/:id", broadcastHandler.GetBroadcast)
					broadcasts.DELETE("/:id", broadcastHandler.DeleteBroadcast)
				}

				// Admin console
				console := admin.Group("/admin")
				{
					console.GET("/users", adminHandler.ListUsers)
					console.PUT("/users/:id/status", adminHandler.SetUserActive)
					console.DELETE("/users/:id", adminHandler.DeleteUser)
					console.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
					console.GET("/export/users", adminHandler.ExportUsers)
					console.GET("/export/subscriptions", adminHandler.ExportSubscriptions)
					console.GET("/whatsapp/status", adminHandler.WhatsAppStatus)
				}
			}
		}
	}

	return r
}
