package http

import (
	"time"

	"GeniusLabs/internal/catalog"
	"GeniusLabs/internal/config"
	"GeniusLabs/internal/delivery/http/controllers"
	achievementctl "GeniusLabs/internal/delivery/http/controllers/achievement"
	profilectl "GeniusLabs/internal/delivery/http/controllers/profile"
	progressctl "GeniusLabs/internal/delivery/http/controllers/progress"
	"GeniusLabs/internal/service"
	"GeniusLabs/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, cfg *config.Config, u service.Collection, cat *catalog.Catalog, db controllers.Pinger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsConfig))

	statusController := controllers.NewStatusHandler(db)
	modulesController := controllers.NewModulesHandler(cat)
	progressController := progressctl.NewProgressHandler(l, u.ProgressService)
	profileController := profilectl.NewProfileHandler(l, u.ProfileService)
	achievementController := achievementctl.NewAchievementHandler(l, u.AchievementService)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)
		v1.GET("/modules", modulesController.ListModules)

		api := v1.Group("")
		if cfg.JWT.SecretKey != "" {
			api.Use(controllers.AuthMiddleware(l, cfg.JWT.SecretKey))
		}

		progress := api.Group("/progress")
		{
			progress.GET("", progressController.ListProgress)
			progress.POST("", progressController.CreateProgress)
			progress.DELETE("", progressController.DeleteProgress)
			progress.GET("/:module_id", progressController.GetProgress)
			progress.PATCH("/:module_id", progressController.UpdateProgress)
			progress.POST("/:module_id/lesson", progressController.CompleteLesson)
			progress.POST("/:module_id/quiz", progressController.SubmitQuizScore)
		}

		achievements := api.Group("/achievements")
		{
			achievements.GET("", achievementController.ListAchievements)
			achievements.POST("", achievementController.UnlockAchievement)
			achievements.PUT("", achievementController.CheckAndUnlockAll)
			achievements.DELETE("", achievementController.ResetAchievements)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.POST("", profileController.UpdateProfile)
			profile.PATCH("", profileController.UpdateSettings)
			profile.DELETE("", profileController.DeleteProfile)
			profile.PUT("/avatar", profileController.UploadAvatar)
		}
	}
	return r
}
