package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/tasks"
)

// TasksController exposes the task queue: status lookups and manual runs of
// the maintenance tasks.
type TasksController struct {
	queue            TaskQueue
	stageExpiryAfter time.Duration
}

// NewTasksController creates a new TasksController. stageExpiryAfter is the
// age used by a manually triggered stage expiry.
func NewTasksController(queue TaskQueue, stageExpiryAfter time.Duration) *TasksController {
	return &TasksController{queue: queue, stageExpiryAfter: stageExpiryAfter}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RunTaskRequest is the optional body of POST /api/tasks/:type/run.
type RunTaskRequest struct {
	// WordID is required for enrich_word.
	WordID string `json:"wordId,omitempty"`
	// OlderThan overrides the configured age for expire_stage_words, e.g. "48h".
	OlderThan string `json:"olderThan,omitempty"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        tasks.EnrichWordTask{}.Config().Name,
			Description: "Fill in a word from the dictionary and add sample pronunciations",
		},
		{
			Type:        tasks.ExpireStageWordsTask{}.Config().Name,
			Description: "Mark stale pending stage words as failed",
		},
	}

	c.JSON(http.StatusOK, gin.H{"taskTypes": types})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID, ok := requireIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	var task backlite.Task
	switch taskType {
	case tasks.EnrichWordTask{}.Config().Name:
		if req.WordID == "" {
			respondBadRequest(c, "wordId is required for enrich_word task")
			return
		}
		task = tasks.EnrichWordTask{WordID: req.WordID}

	case tasks.ExpireStageWordsTask{}.Config().Name:
		olderThan := tc.stageExpiryAfter
		if req.OlderThan != "" {
			d, err := time.ParseDuration(req.OlderThan)
			if err != nil || d <= 0 {
				respondBadRequest(c, "invalid olderThan")
				return
			}
			olderThan = d
		}
		task = tasks.ExpireStageWordsTask{OlderThan: olderThan}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	taskID, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	respondAccepted(c, "task enqueued", gin.H{"taskId": taskID, "type": taskType})
}
