package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/constants"
	"github.com/taskdeck/taskdeck/internal/dto"
	apierrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/services"
	"github.com/taskdeck/taskdeck/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the shared form/JSON body for task mutations.
type TaskRequest struct {
	Title   string `form:"title" json:"title"`
	Status  string `form:"status" json:"status"`
	DueDate string `form:"due_date" json:"due_date"`
	Notes   string `form:"notes" json:"notes"`
}

// CreateTask creates a task inside a project the current user owns.
// A malformed due date does not fail the request; the task is created
// without one and a warning rides in the response.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "Invalid project ID")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, dateOK := utils.ParseDueDate(req.DueDate)

	task, err := h.taskService.Create(services.CreateTaskInput{
		OwnerID:   userID,
		ProjectID: projectID,
		Title:     req.Title,
		Status:    models.TaskStatus(req.Status),
		DueDate:   dueDate,
		Notes:     req.Notes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(*task, dateOK))
}

// GetTask returns a single task after resolving ownership through its
// parent project.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "Invalid task ID")
	if !ok {
		return
	}

	task, err := h.taskService.Get(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask replaces a task's title, status, due date, and notes.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "Invalid task ID")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, dateOK := utils.ParseDueDate(req.DueDate)

	task, err := h.taskService.Update(services.UpdateTaskInput{
		OwnerID: userID,
		TaskID:  taskID,
		Title:   req.Title,
		Status:  models.TaskStatus(req.Status),
		DueDate: dueDate,
		Notes:   req.Notes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(*task, dateOK))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "Invalid task ID")
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

func taskResponse(task models.Task, dateOK bool) gin.H {
	resp := gin.H{"task": dto.ToTaskDTO(task)}
	if !dateOK {
		resp["warning"] = constants.DueDateWarning
	}
	return resp
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
