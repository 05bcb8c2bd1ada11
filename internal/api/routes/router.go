package routes

import (
	"github.com/adflow-io/adflow-go/internal/api/handlers"
	"github.com/adflow-io/adflow-go/internal/api/middleware"
	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/cron"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/storage"
	"github.com/adflow-io/adflow-go/internal/ws"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/adflow-io/adflow-go/docs"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.ObjectStore) {
	repos := repository.NewRepositories(db)
	services := application.New(repos, store)
	hub := ws.NewHub()
	h := handlers.New(services, repos, hub)

	// Background audit retention cleanup
	cron.StartAuditCleanupTask(services.Audit)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/ws/events", h.WS.Events)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/auth/status", h.Auth.Status)

		profiles := auth.Group("/profiles")
		{
			profiles.GET("", middleware.Staff(), h.Profile.List)
			profiles.GET("/:id", h.Profile.GetByID)
			profiles.POST("", middleware.Admin(), h.Profile.Create)
			profiles.PUT("/:id", middleware.Admin(), h.Profile.Update)
			profiles.PUT("/:id/password", h.Profile.ChangePassword)
			profiles.DELETE("/:id", middleware.Admin(), h.Profile.Delete)
		}

		clients := auth.Group("/clients")
		{
			clients.GET("", middleware.Staff(), h.Client.List)
			clients.GET("/by-user", h.Client.GetOwn)
			clients.GET("/:id", middleware.Staff(), h.Client.GetByID)
			clients.POST("", middleware.Admin(), h.Client.Create)
			clients.PUT("/:id", middleware.Admin(), h.Client.Update)
			clients.DELETE("/:id", middleware.Admin(), h.Client.Delete)
		}

		requests := auth.Group("/requests")
		{
			requests.POST("", h.Request.Create)
			requests.GET("", h.Request.List)
			requests.GET("/by-client/:clientId", h.Request.ListByClient)
			requests.GET("/:id", h.Request.GetByID)
			requests.PUT("/:id", h.Request.Update)
			requests.PUT("/:id/status", middleware.Staff(), h.Request.UpdateStatus)
			requests.PUT("/:id/operator", middleware.Staff(), h.Request.AssignOperator)
			requests.DELETE("/:id", middleware.Admin(), h.Request.Delete)

			requests.GET("/:id/comments", h.Comment.ListByRequest)
			requests.POST("/:id/comments", h.Comment.Create)

			requests.POST("/:id/attachments", h.Attachment.Upload)
			requests.GET("/:id/attachments", h.Attachment.ListByRequest)
		}

		comments := auth.Group("/comments")
		{
			comments.PUT("/:id", h.Comment.Update)
			comments.DELETE("/:id", h.Comment.Delete)
			comments.GET("/:id/attachments", h.Attachment.ListByComment)
		}

		attachments := auth.Group("/attachments")
		{
			attachments.POST("/sign", h.Attachment.Sign)
			attachments.DELETE("/:id", h.Attachment.Delete)
		}

		auth.GET("/stats/overview", middleware.Admin(), h.Stats.Overview)
		auth.GET("/audit-logs", middleware.Admin(), h.Audit.List)
	}
}
