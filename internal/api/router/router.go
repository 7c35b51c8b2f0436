package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/melluro/repair-requests-system-2026/config"
	"github.com/melluro/repair-requests-system-2026/internal/api/handler"
	"github.com/melluro/repair-requests-system-2026/internal/api/middleware"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/pkg/jwt"
	"github.com/melluro/repair-requests-system-2026/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由。路由层仅做粗粒度角色拦截，
		// 细粒度权限由 Service 层的权限门统一把关。
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.POST("", middleware.RoleAuth(model.RoleAdministrator), h.User.CreateUser)
				users.GET("", middleware.RoleAuth(model.RoleAdministrator), h.User.ListUsers)
				users.GET("/specialists", h.User.ListSpecialists)
			}

			// 客户目录（受理前电话查重）
			authorized.GET("/clients", middleware.RoleAuth(model.RoleAdministrator, model.RoleOperator, model.RoleManager), h.Client.List)

			// 维修申请模块
			requests := authorized.Group("/requests")
			{
				requests.POST("", middleware.RoleAuth(model.RoleAdministrator, model.RoleOperator), h.Request.Create)
				requests.GET("", h.Request.List)
				requests.GET("/:id", h.Request.Get)
				requests.PATCH("/:id/status", middleware.RoleAuth(model.RoleAdministrator, model.RoleOperator, model.RoleSpecialist), h.Request.UpdateStatus)
				requests.POST("/:id/specialists", middleware.RoleAuth(model.RoleAdministrator, model.RoleOperator, model.RoleManager, model.RoleQualityManager), h.Request.AssignSpecialist)
				requests.POST("/:id/deadline/extend", middleware.RoleAuth(model.RoleQualityManager), h.Request.ExtendDeadline)
				requests.PUT("/:id/deadline", middleware.RoleAuth(model.RoleQualityManager), h.Request.SetDeadline)
				requests.PUT("/:id/help", middleware.RoleAuth(model.RoleSpecialist), h.Request.SetHelpNeeded)

				requests.POST("/:id/comments", h.Request.AddComment)
				requests.GET("/:id/comments", h.Request.ListComments)
				requests.POST("/:id/reviews", middleware.RoleAuth(model.RoleAdministrator, model.RoleOperator, model.RoleQualityManager), h.Request.AddReview)
				requests.GET("/:id/reviews", h.Request.ListReviews)

				requests.POST("/:id/parts", middleware.RoleAuth(model.RoleAdministrator, model.RoleSpecialist), h.Part.AssignToRequest)
				requests.GET("/:id/parts", h.Part.ListForRequest)
			}

			// 配件模块
			parts := authorized.Group("/parts")
			{
				parts.POST("", middleware.RoleAuth(model.RoleAdministrator, model.RoleSpecialist), h.Part.Create)
				parts.GET("", h.Part.List)
			}

			// 统计模块
			stats := authorized.Group("/stats")
			{
				stats.GET("", middleware.RoleAuth(model.RoleAdministrator, model.RoleManager), h.Stats.Get)
				stats.GET("/export", middleware.RoleAuth(model.RoleAdministrator, model.RoleManager), h.Stats.Export)
			}
		}
	}

	return r
}
