package router

import (
	"gamepulse-go/internal/api/handler"
	"gamepulse-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	newsHandler *handler.NewsHandler,
	commentHandler *handler.CommentHandler,
	voteHandler *handler.VoteHandler,
	ratingHandler *handler.RatingHandler,
	reportHandler *handler.ReportHandler,
	moderationHandler *handler.ModerationHandler,
	taxonomyHandler *handler.TaxonomyHandler,
	searchHandler *handler.SearchHandler,
	newsletterHandler *handler.NewsletterHandler,
	adminHandler *handler.AdminHandler,
	editorMiddleware gin.HandlerFunc,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.Me)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users", middleware.AuthRequired())
	{
		users.PUT("/me", userHandler.UpdateProfile)
	}

	// --- 新闻模块 ---
	news := v1.Group("/news")
	{
		// 公开接口（不需要登录）
		news.GET("", newsHandler.List)
		news.GET("/featured", newsHandler.Featured)
		news.GET("/:slug", middleware.OptionalAuth(), newsHandler.Detail)

		// 评论列表可选登录，登录后返回本人投票标记
		news.GET("/:slug/comments", middleware.OptionalAuth(), commentHandler.ListByNews)

		// 需要登录的接口
		newsAuth := news.Group("", middleware.AuthRequired())
		{
			newsAuth.POST("/:slug/comments", commentHandler.Create)
			newsAuth.POST("/:slug/rating", ratingHandler.Rate)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.POST("/:id/vote", voteHandler.Vote)
		comments.POST("/:id/report", reportHandler.Create)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 分类/标签/搜索（公开） ---
	v1.GET("/categories", taxonomyHandler.ListCategories)
	v1.GET("/tags", taxonomyHandler.ListTags)
	v1.GET("/search", searchHandler.Search)

	// --- 后台模块 ---
	admin := v1.Group("/admin", middleware.AuthRequired())
	{
		// 编辑接口（admin 同样放行）
		editor := admin.Group("", editorMiddleware)
		{
			editor.GET("/news", newsHandler.ListBackoffice)
			editor.POST("/news", newsHandler.Create)
			editor.GET("/news/:id", newsHandler.GetBackoffice)
			editor.PUT("/news/:id", newsHandler.Update)
			editor.DELETE("/news/:id", newsHandler.Delete)
			editor.POST("/news/:id/image", newsHandler.UploadImage)

			editor.GET("/newsletter/subscribers", newsletterHandler.ListSubscribers)
			editor.POST("/newsletter/send", newsletterHandler.SendDigest)
		}

		// 管理员接口
		adminOnly := admin.Group("", adminMiddleware)
		{
			adminOnly.GET("/reports", moderationHandler.ListReports)
			adminOnly.GET("/reports/:id", moderationHandler.GetReport)
			adminOnly.POST("/reports/:id/resolve", moderationHandler.Resolve)

			adminOnly.GET("/users", userHandler.List)
			adminOnly.PUT("/users/:id/active", userHandler.SetActive)
			adminOnly.PUT("/users/:id/role", userHandler.SetRole)

			adminOnly.POST("/categories", taxonomyHandler.CreateCategory)
			adminOnly.PUT("/categories/:id", taxonomyHandler.UpdateCategory)
			adminOnly.DELETE("/categories/:id", taxonomyHandler.DeleteCategory)

			adminOnly.POST("/tags", taxonomyHandler.CreateTag)
			adminOnly.PUT("/tags/:id", taxonomyHandler.UpdateTag)
			adminOnly.DELETE("/tags/:id", taxonomyHandler.DeleteTag)

			adminOnly.GET("/dashboard", adminHandler.Dashboard)
			adminOnly.POST("/maintenance/recount-votes", adminHandler.RecountVotes)
			adminOnly.POST("/maintenance/recount-ratings", adminHandler.RecountRatings)
			adminOnly.POST("/search/reindex", searchHandler.Reindex)
		}
	}
}
