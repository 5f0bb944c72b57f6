package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/internal/auth"
	"github.com/reforma-dev/reforma/internal/config"
	"github.com/reforma-dev/reforma/internal/handlers"
	"github.com/reforma-dev/reforma/internal/metrics"
	"github.com/reforma-dev/reforma/internal/middleware"
	"github.com/reforma-dev/reforma/internal/types"
)

func NewRouter(cfg *config.Config, tokens *auth.TokenService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(metrics.Middleware())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", metrics.Handler())

	authHandler := handlers.NewAuthHandler(tokens)
	requireAuth := middleware.RequireAuth(tokens)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/profile", requireAuth, authHandler.Profile)
			authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
			authGroup.PUT("/password", requireAuth, authHandler.ChangePassword)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor), handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PUT("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor), handlers.UpdateProject)
			projects.DELETE("/:id", middleware.RequireRoles(types.RoleAdmin), handlers.DeleteProject)
			projects.GET("/:id/stats", handlers.GetProjectStats)
		}

		workOrders := api.Group("/work_orders", requireAuth)
		{
			workOrders.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico), handlers.CreateWorkOrder)
			workOrders.GET("", handlers.ListWorkOrders)
			workOrders.GET("/:id", handlers.GetWorkOrder)
			workOrders.PUT("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico), handlers.UpdateWorkOrder)
			workOrders.DELETE("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor), handlers.DeleteWorkOrder)
			workOrders.GET("/:id/stats", handlers.GetWorkOrderStats)
		}

		checkpoints := api.Group("/checkpoints", requireAuth)
		{
			checkpoints.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico), handlers.CreateCheckpoint)
			checkpoints.GET("", handlers.ListCheckpoints)
			checkpoints.GET("/:id", handlers.GetCheckpoint)
			checkpoints.PUT("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico), handlers.UpdateCheckpoint)
			checkpoints.DELETE("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor), handlers.DeleteCheckpoint)
			checkpoints.PATCH("/:id/complete", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico), handlers.CompleteCheckpoint)
		}

		materials := api.Group("/materials", requireAuth, middleware.RequireRoles(types.RoleAdmin, types.RoleGestor, types.RoleTecnico))
		{
			materials.POST("", handlers.CreateMaterial)
			materials.GET("", handlers.ListMaterials)
			materials.GET("/:id", handlers.GetMaterial)
			materials.PUT("/:id", handlers.UpdateMaterial)
			materials.DELETE("/:id", middleware.RequireRoles(types.RoleAdmin, types.RoleGestor), handlers.DeleteMaterial)
			materials.PATCH("/:id/stock", handlers.UpdateStock)
		}

		vendors := api.Group("/vendors", requireAuth, middleware.RequireRoles(types.RoleAdmin, types.RoleGestor))
		{
			vendors.POST("", handlers.CreateVendor)
			vendors.GET("", handlers.ListVendors)
			vendors.GET("/:id", handlers.GetVendor)
			vendors.PUT("/:id", handlers.UpdateVendor)
			vendors.DELETE("/:id", handlers.DeleteVendor)
		}
	}

	return r
}
