package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pixel_plaza/internal/service"

	"github.com/gin-gonic/gin"
)

// MyTasks returns the caller's task list with progress.
func (h *Handler) MyTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// ClaimTaskReward pays out a completed task.
func (h *Handler) ClaimTaskReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	res, err := h.Tasks.Claim(c.Request.Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, service.ErrTaskNotCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "task not completed"})
		case errors.Is(err, service.ErrRewardClaimed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reward already claimed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claim failed"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
