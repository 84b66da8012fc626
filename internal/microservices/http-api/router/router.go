package router

import (
	"log/slog"
	"time"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/handler"
	"churchhub/internal/microservices/http-api/middleware"
	"churchhub/internal/microservices/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Project      *handler.ProjectHandler
	Contribution *handler.ContributionHandler
	Branch       *handler.BranchHandler
	Magazine     *handler.MagazineHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
}

type Options struct {
	Verifier       middleware.TokenVerifier
	Hub            *websocket.Hub // nil disables the notification stream
	AuthLimiter    *middleware.IPRateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration
	// MaxMultipartMemory bounds the in-memory part of an upload; the rest spills to temp files.
	MaxMultipartMemory int64
	Logger             *slog.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	if opts.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MaxMultipartMemory
	}

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(opts.Logger),
		cors.New(corsConfig(opts.AllowedOrigins)),
		middleware.ErrorHandler(opts.Logger),
	)
	r.NoRoute(middleware.NotFound())

	authRequired := middleware.AuthMiddleware(opts.Verifier)
	manager := middleware.RequireRole(access.RoleBranchCoordinator, access.RoleAdmin)
	admin := middleware.RequireAdmin()
	validID := middleware.ValidIDParams("id")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Live)
		api.GET("/health/ready", h.Health.Ready)

		timed := api.Group("", middleware.Timeout(opts.RequestTimeout))

		auth := timed.Group("/auth")
		{
			limited := auth.Group("")
			if opts.AuthLimiter != nil {
				limited.Use(opts.AuthLimiter.Middleware())
			}
			limited.POST("/register", h.Auth.Register)
			limited.POST("/login", h.Auth.Login)
			auth.GET("/me", authRequired, h.Auth.Me)
			auth.POST("/logout", authRequired, h.Auth.Logout)
		}

		users := timed.Group("/users", authRequired, admin, validID)
		{
			users.GET("/:id", h.User.Get)
			users.PUT("/:id/assignment", h.User.Assign)
		}

		projects := timed.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.GET("/:id", validID, h.Project.Get)
			projects.POST("", authRequired, manager, h.Project.Create)
			projects.PUT("/:id", authRequired, manager, validID, h.Project.Update)
			projects.DELETE("/:id", authRequired, manager, validID, h.Project.Delete)
		}

		contributions := timed.Group("/contributions", authRequired, validID)
		{
			contributions.POST("", middleware.RequireCapability(access.CapContribute), h.Contribution.Create)
			contributions.GET("/user", h.Contribution.ListMine)
			contributions.GET("/project/:id", h.Contribution.ListByProject)
		}

		magazine := timed.Group("/magazine", authRequired, validID)
		{
			magazine.GET("/submissions", h.Magazine.ListSubmissions)
			magazine.POST("/submissions", middleware.RequireCapability(access.CapSubmit), h.Magazine.CreateSubmission)
			magazine.GET("/submissions/:id", h.Magazine.GetSubmission)
			magazine.GET("/submissions/:id/attachments/:index", h.Magazine.Attachment)
			magazine.PUT("/submissions/:id/status", middleware.RequireCapability(access.CapSubmissionReview), h.Magazine.ReviewSubmission)

			sections := magazine.Group("/sections", middleware.RequireCapability(access.CapSectionManage))
			sections.GET("", h.Magazine.ListSections)
			sections.POST("", h.Magazine.CreateSection)
			sections.PUT("/:id", h.Magazine.UpdateSection)
			sections.DELETE("/:id", h.Magazine.DeleteSection)
		}

		branches := timed.Group("/branches", authRequired, validID)
		{
			branches.GET("", h.Branch.List)
			branches.GET("/:id", h.Branch.Get)
			branches.GET("/:id/projects", h.Branch.Projects)
			branches.POST("", middleware.RequireCapability(access.CapBranchManage), h.Branch.Create)
			branches.PUT("/:id", middleware.RequireCapability(access.CapBranchManage), h.Branch.Update)
			branches.GET("/:id/members", middleware.RequireCapability(access.CapBranchInspect), h.Branch.Members)
			branches.GET("/:id/stats", middleware.RequireCapability(access.CapBranchInspect), h.Branch.Stats)
		}

		notifications := timed.Group("/notifications", authRequired, validID)
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/:id/read", h.Notification.MarkAsRead)
			notifications.PUT("/read-all", h.Notification.MarkAllAsRead)
		}

		// long-lived, so outside the request timeout
		if opts.Hub != nil {
			api.GET("/notifications/ws", middleware.WebSocketAuthMiddleware(opts.Verifier),
				websocket.WSHandler(opts.Hub, opts.AllowedOrigins, opts.Logger))
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// credentials cannot be combined with a wildcard origin
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
