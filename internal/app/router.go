package app

import (
	"award_backend/docs"
	"award_backend/internal/config"
	"award_backend/internal/middleware"
	"award_backend/internal/model"
	"award_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerParticipantRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
	a.registerJuryRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerParticipantRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/groups", c.catalog.ListGroups)
		authGroup.GET("/questions", c.catalog.ListQuestions)

		authGroup.POST("/sessions", c.session.Start)
		authGroup.GET("/sessions/:id", c.session.Get)
		authGroup.POST("/sessions/:id/answer", c.session.SaveAnswer)
		authGroup.POST("/sessions/:id/batch-answer", c.session.BatchSaveAnswers)
		authGroup.POST("/sessions/:id/submit", c.session.Submit)
		authGroup.POST("/sessions/:id/evidence", c.session.UploadEvidence)
		authGroup.GET("/sessions/:id/progress", c.session.Progress)

		authGroup.GET("/award-rankings", c.ranking.Leaderboard)
		authGroup.GET("/award-rankings/:id", c.ranking.Get)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/sessions", c.session.List)
		admin.GET("/sessions/:id/scores", c.session.Scores)
		admin.POST("/sessions/:id/approve", c.session.Approve)
		admin.POST("/sessions/:id/reject", c.session.Reject)
		admin.POST("/sessions/:id/advance", c.session.Advance)

		admin.POST("/sessions/:id/comments", c.review.AddComment)
		admin.GET("/sessions/:id/comments", c.review.ListComments)
		admin.PATCH("/comments/:id/resolve", c.review.ResolveComment)
		admin.POST("/sessions/:id/review/batch", c.review.BatchUpdate)

		admin.POST("/questions", c.catalog.CreateQuestion)
		admin.GET("/questions/:id", c.catalog.GetQuestion)
		admin.PUT("/questions/:id", c.catalog.UpdateQuestion)
		admin.DELETE("/questions/:id", c.catalog.DeleteQuestion)

		admin.POST("/categories", c.catalog.CreateCategory)
		admin.GET("/categories", c.catalog.ListCategories)
		admin.PUT("/categories/:id", c.catalog.UpdateCategory)
		admin.DELETE("/categories/:id", c.catalog.DeleteCategory)

		admin.POST("/groups", c.catalog.CreateGroup)
	}
}

func (a *App) registerJuryRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	jury := router.Group("/api/jury")
	jury.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Juri))
	{
		jury.POST("/award-rankings/scoring", c.ranking.RecordScore)
		jury.PATCH("/award-rankings/scoring/:id", c.ranking.UpdateScore)
	}
}
