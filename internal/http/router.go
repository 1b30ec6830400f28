package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter)
	}

	queue := cfg.TaskQueue
	if queue != nil && cfg.Metrics != nil {
		queue = &meteredQueue{TaskQueue: queue, metrics: cfg.Metrics}
	}

	words := NewWordsController(cfg.Store, queue, cfg.Auditor)
	wordRoutes := api.Group("/words")
	{
		wordRoutes.GET("", words.ListWords)
		wordRoutes.POST("", words.CreateWord)
		wordRoutes.GET("/search", words.SearchWords)
		wordRoutes.GET("/stats", words.Stats)
		wordRoutes.GET("/:id", words.GetWord)
		wordRoutes.PATCH("/:id", words.UpdateWord)
		wordRoutes.DELETE("/:id", words.DeleteWord)
		wordRoutes.POST("/:id/enrich", words.EnrichWord)
		wordRoutes.GET("/:id/pronunciations", words.ListPronunciations)
		wordRoutes.POST("/:id/pronunciations", words.AddPronunciation)
		wordRoutes.GET("/:id/stage-words", words.ListStageWords)
		wordRoutes.POST("/:id/stage-words", words.AddStageWord)
	}

	pronunciations := NewPronunciationsController(cfg.Store)
	pronunciationRoutes := api.Group("/pronunciations")
	{
		pronunciationRoutes.POST("", pronunciations.CreatePronunciation)
		pronunciationRoutes.GET("/:id", pronunciations.GetPronunciation)
		pronunciationRoutes.DELETE("/:id", pronunciations.DeletePronunciation)
		pronunciationRoutes.PUT("/:id/word", pronunciations.AssignWord)
	}

	stageWords := NewStageWordsController(cfg.Store)
	stageWordRoutes := api.Group("/stage-words")
	{
		stageWordRoutes.POST("", stageWords.CreateStageWord)
		stageWordRoutes.GET("/:id", stageWords.GetStageWord)
		stageWordRoutes.DELETE("/:id", stageWords.DeleteStageWord)
		stageWordRoutes.POST("/:id/listen", stageWords.RecordListen)
	}

	if queue != nil {
		tasksController := NewTasksController(queue, cfg.StageExpiryAfter)
		taskRoutes := api.Group("/tasks")
		{
			taskRoutes.GET("/types", tasksController.ListTaskTypes)
			taskRoutes.GET("/:id", tasksController.GetTaskStatus)
			taskRoutes.POST("/:type/run", tasksController.RunTask)
		}
	}

	return router
}

// meteredQueue counts successful enqueues per queue name.
type meteredQueue struct {
	TaskQueue
	metrics *metrics.Metrics
}

func (q *meteredQueue) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	id, err := q.TaskQueue.Enqueue(ctx, task)
	if err == nil {
		q.metrics.RecordTaskEnqueued(task.Config().Name)
	}
	return id, err
}
