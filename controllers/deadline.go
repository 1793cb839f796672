// controllers/deadline.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homework-tracker-api/services"
	"homework-tracker-api/utils"
)

var (
	deadlineService *services.DeadlineService
	checkedService  *services.CheckedSubmissionService
	reminderService *services.ReminderService
)

// Setup injects the owning services. Called once from main before the
// router starts serving.
func Setup(deadlines *services.DeadlineService, checked *services.CheckedSubmissionService, reminder *services.ReminderService) {
	deadlineService = deadlines
	checkedService = checked
	reminderService = reminder
}

type setDeadlineRequest struct {
	HomeworkID string    `json:"homework_id" binding:"required"`
	GroupID    string    `json:"group_id" binding:"required"`
	Deadline   time.Time `json:"deadline" binding:"required"`
}

// SetDeadline creates or replaces the cutoff for a homework/group pair.
func SetDeadline(c *gin.Context) {
	var req setDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "homework_id, group_id and deadline are required",
		})
		return
	}

	homeworkID := utils.SanitizeInput(req.HomeworkID)
	groupID := utils.SanitizeInput(req.GroupID)
	if !utils.ValidateIdentifier(homeworkID) || !utils.ValidateIdentifier(groupID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid homework_id or group_id",
		})
		return
	}

	record := deadlineService.SetDeadline(homeworkID, groupID, req.Deadline)
	if record == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to save deadline",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deadline": record,
	})
}

// GetDeadlines returns every stored deadline record.
func GetDeadlines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"deadlines": deadlineService.GetAllDeadlines(),
	})
}

// GetDeadline returns the record for one homework/group pair.
func GetDeadline(c *gin.Context) {
	homeworkID := c.Param("homework_id")
	groupID := c.Param("group_id")

	record := deadlineService.GetDeadline(homeworkID, groupID)
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "deadline not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deadline": record,
	})
}

// GetDeadlineStatus returns the computed status projection. Always 200:
// "no deadline" is a valid status, not an error.
func GetDeadlineStatus(c *gin.Context) {
	homeworkID := c.Param("homework_id")
	groupID := c.Param("group_id")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  deadlineService.GetRemainingTime(homeworkID, groupID),
	})
}

type bulkStatusRequest struct {
	HomeworkIDs []string `json:"homework_ids" binding:"required"`
	GroupID     string   `json:"group_id" binding:"required"`
}

// GetBulkStatus returns statuses for a list of homeworks, preserving the
// request order.
func GetBulkStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "homework_ids and group_id are required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"statuses": deadlineService.GetBulkStatus(req.HomeworkIDs, req.GroupID),
	})
}

// GetUpcomingDeadlines returns a group's urgent and critical deadlines.
func GetUpcomingDeadlines(c *gin.Context) {
	groupID := c.Param("group_id")

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"upcoming": deadlineService.GetUpcomingDeadlines(groupID),
	})
}

type digestRequest struct {
	Recipients []string `json:"recipients"`
}

// SendDeadlineDigest mails the group's upcoming deadlines. Recipients come
// from the request body, falling back to REMINDER_RECIPIENTS.
func SendDeadlineDigest(c *gin.Context) {
	groupID := c.Param("group_id")

	var req digestRequest
	_ = c.ShouldBindJSON(&req)
	recipients := req.Recipients
	if len(recipients) == 0 {
		recipients = reminderService.DefaultRecipients()
	}

	count, err := reminderService.SendUpcomingDigest(groupID, recipients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to send deadline digest",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}
