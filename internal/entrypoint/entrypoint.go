package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/audit"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/dictionary"
	http_controllers "github.com/mrlokans/wordbook/internal/http"
	"github.com/mrlokans/wordbook/internal/metrics"
	"github.com/mrlokans/wordbook/internal/scheduler"
	"github.com/mrlokans/wordbook/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything Run wires together.
type App struct {
	Router     *gin.Engine
	Database   *database.Database
	Repository *vocabulary.Repository
	TaskClient *tasks.Client
	Scheduler  *scheduler.StageExpiryScheduler

	taskCtxCancel context.CancelFunc
}

// NewApp opens the database, starts the task queue and the stage expiry
// scheduler when they are enabled, and builds the router.
func NewApp(cfg *config.Config, version string) (*App, error) {
	rateLimiter, err := http_controllers.RateLimitMiddleware(cfg.HTTP.RateLimit)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		Database:   db,
		Repository: vocabulary.NewRepository(db.DB),
	}

	auditor := audit.NewAuditor(cfg.Audit.Dir)
	if !auditor.Enabled() {
		log.Printf("Audit directory is not set, payload archiving is disabled")
	}

	dictClient := dictionary.NewFreeDictionaryClient(cfg.Dictionary.BaseURL)

	routerCfg := http_controllers.RouterConfig{
		Store:            app.Repository,
		Database:         db,
		StageExpiryAfter: cfg.StageExpiry.After,
		Auditor:          auditor,
		RateLimiter:      rateLimiter,
		Version:          version,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metrics.NewMetrics()
	}

	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.TaskClient = taskClient

		taskClient.Register(
			tasks.NewEnrichWordQueue(app.Repository, dictClient),
			tasks.NewExpireStageWordsQueue(app.Repository),
		)

		var taskCtx context.Context
		taskCtx, app.taskCtxCancel = context.WithCancel(context.Background())
		// backlite's Start returns once the dispatcher is running.
		taskClient.Start(taskCtx)

		// Assigned only here so that a disabled queue stays a nil interface.
		routerCfg.TaskQueue = taskClient

		if cfg.StageExpiry.Enabled {
			app.Scheduler = scheduler.NewStageExpiryScheduler(taskClient, cfg.StageExpiry.Schedule, cfg.StageExpiry.After)
			if err := app.Scheduler.Start(taskCtx); err != nil {
				app.Shutdown(context.Background())
				return nil, fmt.Errorf("failed to start stage expiry scheduler: %w", err)
			}
		}
	} else if cfg.StageExpiry.Enabled {
		log.Printf("WARNING: stage expiry is enabled but the task queue is not; set TASKS_ENABLED=true")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Shutdown stops the scheduler and the task workers and closes both
// databases.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.TaskClient != nil {
		a.TaskClient.Stop(ctx)
		if a.taskCtxCancel != nil {
			a.taskCtxCancel()
		}
		if err := a.TaskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.Database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Workers are stopped after the server so in-flight requests can still
	// enqueue.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Wordbook v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
