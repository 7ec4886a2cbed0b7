package app

import (
	"habitflow_backend/docs"
	"habitflow_backend/internal/config"
	"habitflow_backend/internal/middleware"
	"habitflow_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/levels", c.progress.GetLevelCurve)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)

		authGroup.GET("/categories", c.category.ListCategories)
		authGroup.POST("/categories", c.category.CreateCategory)
		authGroup.PUT("/categories/:id", c.category.UpdateCategory)
		authGroup.DELETE("/categories/:id", c.category.DeleteCategory)

		authGroup.GET("/habits", c.habit.ListHabits)
		authGroup.POST("/habits", c.habit.CreateHabit)
		authGroup.PUT("/habits/:id", c.habit.UpdateHabit)
		authGroup.DELETE("/habits/:id", c.habit.DeleteHabit)

		authGroup.GET("/tasks", c.task.ListTasks)
		authGroup.POST("/tasks", c.task.CreateTask)
		authGroup.PUT("/tasks/:id", c.task.UpdateTask)
		authGroup.PUT("/tasks/:id/done", c.task.SetTaskDone)
		authGroup.DELETE("/tasks/:id", c.task.DeleteTask)

		authGroup.GET("/goals", c.goal.ListGoals)
		authGroup.POST("/goals", c.goal.CreateGoal)
		authGroup.GET("/goals/:id", c.goal.GetGoal)
		authGroup.PUT("/goals/:id", c.goal.UpdateGoal)
		authGroup.POST("/goals/:id/complete", c.goal.CompleteGoal)
		authGroup.DELETE("/goals/:id", c.goal.DeleteGoal)

		authGroup.GET("/routines", c.routine.ListRoutines)
		authGroup.POST("/routines", c.routine.CreateRoutine)
		authGroup.GET("/routines/:id", c.routine.GetRoutine)
		authGroup.PUT("/routines/:id", c.routine.UpdateRoutine)
		authGroup.DELETE("/routines/:id", c.routine.DeleteRoutine)
		authGroup.POST("/routines/:id/sections", c.routine.AddSection)
		authGroup.POST("/routines/:id/schedule", c.schedule.CreateSchedule)

		authGroup.DELETE("/sections/:sectionId", c.routine.DeleteSection)
		authGroup.POST("/sections/:sectionId/habit-groups", c.routine.AddHabitGroup)
		authGroup.POST("/sections/:sectionId/task-groups", c.routine.AddTaskGroup)

		authGroup.GET("/schedules", c.schedule.ListSchedules)
		authGroup.PUT("/schedules/:id", c.schedule.UpdateSchedule)
		authGroup.DELETE("/schedules/:id", c.schedule.DeleteSchedule)

		authGroup.GET("/habit-groups/:id", c.itemGroup.GetHabitGroup)
		authGroup.GET("/task-groups/:id", c.itemGroup.GetTaskGroup)
		authGroup.PUT("/habit-groups/:id/checks", c.check.ToggleHabitCheck)
		authGroup.PUT("/task-groups/:id/checks", c.check.ToggleTaskCheck)

		authGroup.GET("/progress", c.progress.GetProgress)
		authGroup.GET("/progress/leaderboard", c.progress.GetLeaderboard)
	}
}
