package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventplanner/internal/model"
	"eventplanner/internal/repository"
)

// FeedbackHandler handles venue feedback requests.
type FeedbackHandler struct {
	repo *repository.PlannerRepository
}

// NewFeedbackHandler creates a new feedback handler. The repository may
// be nil when no database is configured.
func NewFeedbackHandler(repo *repository.PlannerRepository) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validActions := map[string]bool{
		"click":        true,
		"contact":      true,
		"view_details": true,
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: click, contact, view_details"})
		return
	}

	if h.repo == nil {
		c.JSON(http.StatusOK, model.FeedbackResponse{
			Success: true,
			Message: "Feedback accepted (logging disabled)",
		})
		return
	}

	if err := h.repo.LogFeedback(c.Request.Context(), req.SessionID, req.VenueID, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{Success: true, Message: "Feedback logged successfully"})
}
