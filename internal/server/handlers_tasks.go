package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"
	"taskhub/internal/notify"
	"taskhub/internal/report"

	"github.com/gin-gonic/gin"
)

var allowedTaskStatuses = map[string]bool{
	models.StatusPending:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
}

var allowedTaskPriorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

const reportCacheKey = "reports:progress"

func parseTaskDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (api *TaskAPI) createTask(ctx *gin.Context) {
	var req models.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	// Одна агрегированная ошибка со списком отсутствующих полей.
	missing := []string{}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Deadline == "" {
		missing = append(missing, "deadline")
	}
	if req.Priority == "" {
		missing = append(missing, "priority")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "обязательные поля отсутствуют: " + strings.Join(missing, ", ")})
		return
	}

	if !allowedTaskPriorities[req.Priority] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidPriority.Error()})
		return
	}

	deadline, err := parseTaskDate(req.Deadline)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidDeadline.Error()})
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    req.Priority,
		Category:    req.Category,
		Assignee:    req.Assignee,
		Status:      models.StatusPending,
		SharedWith:  []models.SharedWith{},
		Comments:    []models.Comment{},
		Attachments: []models.Attachment{},
	}

	if req.DueDate != "" {
		dueDate, err := parseTaskDate(req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidDeadline.Error()})
			return
		}
		task.DueDate = &dueDate
	}
	if req.ReminderDate != "" {
		reminderDate, err := parseTaskDate(req.ReminderDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidDeadline.Error()})
			return
		}
		task.ReminderDate = &reminderDate
	}

	if err := api.tasks.CreateTask(ctx.Request.Context(), &task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"task": task})
}

func (api *TaskAPI) getTasks(ctx *gin.Context) {
	tasks, err := api.tasks.GetTasks(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (api *TaskAPI) fetchTask(ctx *gin.Context) (*models.Task, bool) {
	id := ctx.Param("taskID")
	task, err := api.tasks.GetTaskByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return nil, false
	}
	return task, true
}

func (api *TaskAPI) updateTask(ctx *gin.Context) {
	var req models.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if req.Status != "" && !allowedTaskStatuses[req.Status] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidStatus.Error()})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	// Уведомление не блокирует и не проваливает обновление.
	if req.AssigneeEmail != "" {
		notify.TaskUpdated(api.mailer, req.AssigneeEmail, task.Title, task.Status)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "задача успешно обновлена", "task": task})
}

func (api *TaskAPI) deleteTask(ctx *gin.Context) {
	id := ctx.Param("taskID")
	if err := api.tasks.DeleteTask(ctx.Request.Context(), id); err != nil {
		if err == errors.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "задача успешно удалена"})
}

func (api *TaskAPI) updateTaskStatus(ctx *gin.Context) {
	var req models.SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if !allowedTaskStatuses[req.Status] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidStatus.Error()})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	task.Status = req.Status
	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "статус задачи успешно обновлен", "task": task})
}

func (api *TaskAPI) attachFile(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrNoFileUploaded.Error()})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	if err := os.MkdirAll(api.cfg.UploadDir, 0o755); err != nil {
		log.Println("[ERROR] Не удалось создать папку для загрузок:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	storedPath := filepath.Join(api.cfg.UploadDir, storedName)
	if err := ctx.SaveUploadedFile(file, storedPath); err != nil {
		log.Println("[ERROR] Не удалось сохранить файл:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	task.Attach(file.Filename, storedPath, file.Size)
	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "файл успешно прикреплен",
		"fileData": gin.H{
			"fileName": file.Filename,
			"filePath": storedPath,
			"fileSize": file.Size,
		},
	})
}

func (api *TaskAPI) progressReport(ctx *gin.Context) {
	if api.cache != nil {
		cached, err := api.cache.Get(ctx.Request.Context(), reportCacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			ctx.Data(http.StatusOK, "image/png", cached)
			return
		}
	}

	tasks, err := api.tasks.GetTasks(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	summary := report.Aggregate(tasks)
	log.Printf("[SUCCESS] Сводка по задачам: всего %d, завершено %d, в работе %d, в ожидании %d",
		summary.TotalTasks, summary.CompletedTasks, summary.InProgressTasks, summary.PendingTasks)

	png, err := report.RenderBarChart(summary.TasksByCategory)
	if err != nil {
		if err == errors.ErrNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "задачи не найдены"})
			return
		}
		log.Println("[ERROR] Не удалось построить диаграмму отчёта:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	if api.cache != nil {
		if err := api.cache.Set(ctx.Request.Context(), reportCacheKey, png, time.Minute).Err(); err != nil {
			log.Println("[ERROR] Не удалось закэшировать отчёт:", err)
		}
	}

	ctx.Data(http.StatusOK, "image/png", png)
}
