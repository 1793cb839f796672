// controllers/checked_submission.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homework-tracker-api/models"
	"homework-tracker-api/services"
	"homework-tracker-api/utils"
)

// MoveToChecked moves a reviewed submission out of the pending queue into
// the checked ledger. The pending queue itself is owned by the caller.
func MoveToChecked(c *gin.Context) {
	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid submission payload",
		})
		return
	}

	sub.ID = utils.SanitizeInput(sub.ID)
	if !utils.ValidateIdentifier(sub.ID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "submission id is required",
		})
		return
	}

	checked := checkedService.MoveToChecked(sub)
	if checked == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to save checked submission",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": checked,
	})
}

// GetCheckedSubmissions lists the ledger, optionally filtered by student
// or group. Most recently checked first.
func GetCheckedSubmissions(c *gin.Context) {
	studentID := c.Query("student_id")
	groupID := c.Query("group_id")

	var entries []models.CheckedSubmission
	switch {
	case studentID != "":
		entries = checkedService.GetByStudent(studentID)
	case groupID != "":
		entries = checkedService.GetByGroup(groupID)
	default:
		entries = checkedService.GetAllChecked()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": entries,
	})
}

// RecheckSubmission pulls a checked submission back for another review
// pass. The reopened copy in the response must be re-inserted into the
// pending queue by the caller.
func RecheckSubmission(c *gin.Context) {
	submissionID := c.Param("id")

	reopened := checkedService.Recheck(submissionID)
	if reopened == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "checked submission not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": reopened,
	})
}

type purgeRequest struct {
	Months int `json:"months"`
}

// PurgeCheckedSubmissions drops ledger entries older than the retention
// window (default 6 months).
func PurgeCheckedSubmissions(c *gin.Context) {
	var req purgeRequest
	_ = c.ShouldBindJSON(&req)
	if req.Months <= 0 {
		req.Months = services.DefaultRetentionMonths
	}

	removed := checkedService.PurgeOlderThan(req.Months)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
	})
}
