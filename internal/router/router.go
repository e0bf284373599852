package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/studytrack/backend/api/handler"
)

type Handlers struct {
	Task      *apiHandler.TaskHandler
	Subject   *apiHandler.SubjectHandler
	Study     *apiHandler.StudyHandler
	Profile   *apiHandler.ProfileHandler
	Assistant *apiHandler.AssistantHandler
	Timer     *apiHandler.TimerHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.GET("/api/v1/tasks/overview", handlers.Task.Overview)
	r.DELETE("/api/v1/tasks/completed", handlers.Task.ClearCompleted)
	r.PUT("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)
	r.POST("/api/v1/tasks/{id}/toggle", handlers.Task.ToggleTask)

	r.GET("/api/v1/subjects", handlers.Subject.GetSubjects)
	r.POST("/api/v1/subjects", handlers.Subject.CreateSubject)
	r.PUT("/api/v1/subjects/{id}", handlers.Subject.UpdateSubject)
	r.DELETE("/api/v1/subjects/{id}", handlers.Subject.DeleteSubject)
	r.GET("/api/v1/subjects/{id}/progress", handlers.Subject.Progress)

	r.GET("/api/v1/sessions", handlers.Study.GetSessions)
	r.POST("/api/v1/sessions", handlers.Study.RecordSession)
	r.DELETE("/api/v1/sessions", handlers.Study.ClearSessions)
	r.GET("/api/v1/streak", handlers.Study.GetStreak)

	r.GET("/api/v1/stats/summary", handlers.Study.Summary)
	r.GET("/api/v1/stats/daily", handlers.Study.Daily)
	r.GET("/api/v1/stats/distribution", handlers.Study.Distribution)
	r.GET("/api/v1/stats/export", handlers.Study.Export)

	r.GET("/api/v1/profile", handlers.Profile.GetProfile)
	r.PUT("/api/v1/profile", handlers.Profile.UpdateProfile)
	r.POST("/api/v1/profile/achievements", handlers.Profile.AddAchievement)

	r.POST("/api/v1/assistant/chat", handlers.Assistant.Chat)
	r.POST("/api/v1/assistant/document", handlers.Assistant.SummarizeDocument)

	r.GET("/api/v1/timer", handlers.Timer.Status)
	r.POST("/api/v1/timer/start", handlers.Timer.Start)
	r.POST("/api/v1/timer/pause", handlers.Timer.Pause)
	r.POST("/api/v1/timer/resume", handlers.Timer.Resume)
	r.POST("/api/v1/timer/stop", handlers.Timer.Stop)

	return r
}
