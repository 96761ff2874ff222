package server

import (
	"net/http"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (api *TaskAPI) shareTask(ctx *gin.Context) {
	var req models.ShareTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if req.User == "" || req.Permission == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "пользователь и право доступа обязательны"})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	if err := task.Share(req.User, req.Permission); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}

func (api *TaskAPI) updateSharing(ctx *gin.Context) {
	user := ctx.Param("user")

	var req models.UpdateSharingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if req.Permission == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "право доступа обязательно"})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	if err := task.UpdateSharing(user, req.Permission); err != nil {
		if err == errors.ErrShareNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}

func (api *TaskAPI) removeSharedUser(ctx *gin.Context) {
	user := ctx.Param("user")

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	// Удаляются все записи пользователя; ноль совпадений — тоже успех.
	task.RemoveShared(user)

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}

func (api *TaskAPI) addComment(ctx *gin.Context) {
	var req models.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if req.Content == "" || req.Author == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidComment.Error()})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	if _, err := task.AddComment(req.Content, req.Author); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"comments": task.Comments})
}

func (api *TaskAPI) addReply(ctx *gin.Context) {
	commentID := ctx.Param("commentID")

	var req models.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	if req.Content == "" || req.Author == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidComment.Error()})
		return
	}

	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	comment, err := task.AddReply(commentID, req.Content, req.Author)
	if err != nil {
		if err == errors.ErrCommentNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.tasks.UpdateTask(ctx.Request.Context(), task.ID, task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (api *TaskAPI) getComments(ctx *gin.Context) {
	task, ok := api.fetchTask(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comments": task.Comments})
}
