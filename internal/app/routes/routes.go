package routes

import (
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/controllers"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	classController *controllers.ClassController,
	cprController *controllers.CPRController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Every domain route needs a valid access token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	authenticated.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))

	class := authenticated.Group("/class")
	{
		class.POST("/schedule", classController.ScheduleClasses)
		class.PATCH("/:id", classController.UpdateClass)
		class.DELETE("/:id", classController.DeleteClass)
	}

	classes := authenticated.Group("/classes")
	{
		classes.GET("", classController.ListClasses)
		classes.GET("/:id", classController.GetClass)
	}

	cpr := authenticated.Group("/cpr")
	{
		cpr.PATCH("/sub-topics/:id/status", cprController.UpdateSubTopicStatus)

		subjects := cpr.Group("/subjects/:subjectId")
		{
			subjects.PUT("/curriculum", cprController.ReplaceCurriculum)
			subjects.POST("/curriculum/upload", cprController.UploadCurriculum)
			subjects.GET("/progress", cprController.GetProgress)
			subjects.GET("/progress/export", cprController.ExportProgress)

			// Manual recalculation is an operator tool
			subjects.POST("/recalculate", authMiddleware.RoleRequired(models.RoleAdmin), cprController.Recalculate)
		}
	}
}
