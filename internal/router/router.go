package router

import (
	"time"

	"jobsy/config"
	"jobsy/internal/handler"
	"jobsy/internal/mailer"
	"jobsy/internal/middleware"
	"jobsy/internal/repository"
	"jobsy/internal/service"
	"jobsy/internal/ws"
	"jobsy/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, blobs storage.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	employerRepo := repository.NewEmployerRepository(db)
	listingRepo := repository.NewListingRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	hub := ws.NewHub()

	// Services
	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password)
	}
	authSvc := service.NewAuthService(cfg, userRepo, employerRepo)
	notifSvc := service.NewNotificationService(notificationRepo, employerRepo, userRepo, hub, mail)
	entitlementSvc := service.NewEntitlementService(employerRepo, listingRepo)
	lifecycleSvc := service.NewLifecycleService(listingRepo, employerRepo, notifSvc, entitlementSvc)
	appSvc := service.NewApplicationService(listingRepo, applicationRepo, employerRepo, notifSvc)
	sweepSvc := service.NewSweepService(listingRepo, lifecycleSvc, entitlementSvc, cfg.Sweep.BatchSize)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	jobHandler := handler.NewJobHandler(listingRepo, applicationRepo, notificationRepo, adminRepo, userRepo, appSvc, blobs)
	employerHandler := handler.NewEmployerHandler(listingRepo, employerRepo, applicationRepo, notificationRepo,
		lifecycleSvc, entitlementSvc, appSvc, blobs)
	adminHandler := handler.NewAdminHandler(adminRepo, lifecycleSvc, entitlementSvc, sweepSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	optionalMw := middleware.OptionalAuth(&cfg.JWT)
	guestLimiter := middleware.NewInMemoryRateLimiter(10, time.Hour)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		// Public job feed
		api.GET("/jobs", jobHandler.Feed)
		api.GET("/jobs/:id", jobHandler.Detail)
		api.GET("/pricing", jobHandler.Pricing)
		api.POST("/jobs/:id/apply", optionalMw, middleware.RateLimit(guestLimiter), jobHandler.Apply)

		// Candidate endpoints
		me := api.Group("/me")
		me.Use(authMw)
		{
			me.POST("/saved-jobs/:id", jobHandler.ToggleSave)
			me.GET("/saved-jobs", jobHandler.SavedJobs)
			me.GET("/applications", jobHandler.MyApplications)
			me.GET("/notifications", jobHandler.MyNotifications)
			me.PATCH("/notifications/:id/read", jobHandler.MarkNotificationRead)
			me.POST("/cv", jobHandler.UploadCV)
			me.PATCH("/visibility", jobHandler.UpdateVisibility)
		}

		// Employer endpoints
		employer := api.Group("/employer")
		employer.Use(authMw, middleware.RequireRole("EMPLOYER", "ADMIN"))
		{
			employer.GET("/dashboard", employerHandler.Dashboard)
			employer.POST("/jobs", employerHandler.PostJob)
			employer.GET("/jobs", employerHandler.MyJobs)
			employer.GET("/jobs/deleted", employerHandler.DeletedJobs)
			employer.GET("/jobs/:id", employerHandler.JobDetail)
			employer.POST("/jobs/:id/extend-request", employerHandler.RequestExtension)
			employer.DELETE("/jobs/:id", employerHandler.DeleteJob)
			employer.POST("/jobs/:id/restore", employerHandler.RestoreJob)
			employer.GET("/jobs/:id/applications", employerHandler.JobApplications)
			employer.PATCH("/applications/:id", employerHandler.UpdateApplication)
			employer.PATCH("/applications/:id/read", employerHandler.MarkApplicationRead)
			employer.GET("/notifications", employerHandler.Notifications)
			employer.GET("/notifications/unread-count", employerHandler.UnreadNotificationCount)
			employer.PATCH("/notifications/:id/read", employerHandler.MarkNotificationRead)
			employer.PATCH("/notifications/read-all", employerHandler.MarkAllNotificationsRead)
			employer.GET("/cv-database", employerHandler.CVDatabase)
			employer.POST("/logo", employerHandler.UploadLogo)
			employer.GET("/profile", employerHandler.Profile)
			employer.PATCH("/profile", employerHandler.UpdateProfile)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/listings", adminHandler.Listings)
			admin.GET("/users", adminHandler.Users)
			admin.POST("/listings/:id/decide", adminHandler.Decide)
			admin.POST("/listings/:id/extend", adminHandler.Extend)
			admin.POST("/listings/:id/reactivate", adminHandler.Reactivate)
			admin.POST("/listings/:id/expire", adminHandler.Expire)
			admin.DELETE("/listings/:id", adminHandler.Delete)
			admin.POST("/listings/:id/restore", adminHandler.Restore)
			admin.POST("/employers/:id/cv-access", adminHandler.GrantCVAccess)
			admin.DELETE("/employers/:id/cv-access", adminHandler.RevokeCVAccess)
			admin.POST("/sweep/run", adminHandler.RunSweep)
		}
	}

	// Live notification push
	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, hub))

	return r
}
