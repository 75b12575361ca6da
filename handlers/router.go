package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"timetracker/config"
	"timetracker/helper"
	"timetracker/mailer"
	"timetracker/middleware"
	"timetracker/repositories"
	"timetracker/services"
)

// SetupRouter wires repositories, services and handlers into a gin engine.
func SetupRouter(db *gorm.DB, cfg *config.Config, mail mailer.Mailer) *gin.Engine {
	httpHelper := helper.NewHTTPHelper()

	userRepo := repositories.NewUserRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	authRepo := repositories.NewAuthRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	technologyRepo := repositories.NewTechnologyRepository(db)
	entryRepo := repositories.NewTimeEntryRepository(db)

	authService := services.NewAuthService(userRepo, tenantRepo, authRepo, mail)
	userService := services.NewUserService(userRepo, authRepo, mail)
	tenantService := services.NewTenantService(tenantRepo, userRepo, authRepo, mail)
	clientService := services.NewClientService(clientRepo, projectRepo, entryRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo, technologyRepo)
	timeTrackingService := services.NewTimeTrackingService(entryRepo, projectRepo, technologyRepo)

	authHandler := NewAuthHandler(authService, httpHelper)
	userHandler := NewUserHandler(userService, httpHelper)
	tenantHandler := NewTenantHandler(tenantService, httpHelper)
	clientHandler := NewClientHandler(clientService, httpHelper)
	projectHandler := NewProjectHandler(projectService, httpHelper)
	timeTrackingHandler := NewTimeTrackingHandler(timeTrackingService, httpHelper)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Time Tracker API", "docs": "/api/v1"})
	})

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/password-reset-request", authHandler.RequestPasswordReset)
			auth.POST("/password-reset-confirm", authHandler.ConfirmPasswordReset)
			auth.POST("/accept-invitation", authHandler.AcceptInvitation)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(), middleware.TenantContext(db))
		{
			authed := protected.Group("/auth")
			{
				authed.POST("/logout", authHandler.Logout)
				authed.POST("/refresh", authHandler.Refresh)
				authed.GET("/me", authHandler.Me)
				authed.POST("/select-tenant", authHandler.SelectTenant)
				authed.GET("/tenants", authHandler.Tenants)
			}

			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.Profile)
				users.PUT("/me", userHandler.UpdateProfile)
				users.POST("/me/change-password", userHandler.ChangePassword)
				users.GET("/me/activity", userHandler.Activity)
				users.GET("/:user_id", userHandler.Get)
				users.PUT("/:user_id", userHandler.Update)

				admin := users.Group("")
				admin.Use(middleware.RequireAdmin())
				{
					admin.POST("", userHandler.Create)
					admin.GET("", userHandler.List)
					admin.PUT("/:user_id/role", userHandler.UpdateRole)
					admin.POST("/:user_id/deactivate", userHandler.Deactivate)
				}
			}

			tenants := protected.Group("/tenants")
			{
				tenants.GET("/:tenant_id", tenantHandler.Get)

				admin := tenants.Group("")
				admin.Use(middleware.RequireAdmin())
				{
					admin.POST("", tenantHandler.Create)
					admin.GET("", tenantHandler.List)
					admin.PUT("/:tenant_id", tenantHandler.Update)
					admin.POST("/:tenant_id/deactivate", tenantHandler.Deactivate)
					admin.POST("/:tenant_id/invite", tenantHandler.Invite)
					admin.GET("/:tenant_id/users", tenantHandler.Users)
					admin.PUT("/:tenant_id/users/:user_id/role", tenantHandler.UpdateUserRole)
					admin.DELETE("/:tenant_id/users/:user_id", tenantHandler.RemoveUser)
				}
			}

			clients := protected.Group("/clients")
			{
				clients.POST("", clientHandler.Create)
				clients.GET("", clientHandler.List)
				clients.GET("/:client_id", clientHandler.Get)
				clients.PUT("/:client_id", clientHandler.Update)
				clients.POST("/:client_id/deactivate", clientHandler.Deactivate)
				clients.DELETE("/:client_id", clientHandler.Delete)
				clients.GET("/:client_id/projects", clientHandler.Projects)
				clients.GET("/:client_id/time-summary", clientHandler.TimeSummary)
			}

			projects := protected.Group("/projects")
			{
				projects.POST("", projectHandler.Create)
				projects.GET("", projectHandler.List)
				projects.GET("/:project_id", projectHandler.Get)
				projects.PUT("/:project_id", projectHandler.Update)
				projects.GET("/:project_id/technologies", projectHandler.Technologies)
				projects.POST("/:project_id/technologies/:technology_id", projectHandler.AssignTechnology)
				projects.DELETE("/:project_id/technologies/:technology_id", projectHandler.RemoveTechnology)
			}

			technologies := protected.Group("/technologies")
			{
				technologies.POST("", timeTrackingHandler.CreateTechnology)
				technologies.GET("", timeTrackingHandler.ListTechnologies)
			}

			entries := protected.Group("/time-entries")
			{
				entries.POST("", timeTrackingHandler.CreateEntry)
				entries.GET("", timeTrackingHandler.ListEntries)
			}

			timer := protected.Group("/timer")
			{
				timer.POST("/start", timeTrackingHandler.StartTimer)
				timer.POST("/stop", timeTrackingHandler.StopTimer)
			}

			protected.GET("/dashboard", timeTrackingHandler.Dashboard)
		}
	}

	return router
}
