package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventplanner/internal/model"
	"eventplanner/internal/service"
	"eventplanner/internal/session"
)

// ChatHandler handles planning-session HTTP requests.
type ChatHandler struct {
	flow  *service.Flow
	store session.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(flow *service.Flow, store session.Store) *ChatHandler {
	return &ChatHandler{flow: flow, store: store}
}

// CreateSession handles POST /api/v1/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	now := time.Now()
	sess := &model.Session{
		ID:        newSessionID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	reply := h.flow.Start(sess)

	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, model.CreateSessionResponse{
		SessionID: sess.ID,
		State:     sess.State,
		Question:  reply.Text,
	})
}

// PostMessage handles POST /api/v1/sessions/:id/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req model.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session: " + err.Error()})
		return
	}

	startTime := time.Now()
	reply, err := h.flow.Advance(c.Request.Context(), sess, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message: " + err.Error()})
		return
	}

	sess.UpdatedAt = time.Now()
	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		SessionID: sess.ID,
		State:     sess.State,
		Reply:     reply.Text,
		Options:   reply.Options,
		Venues:    reply.Venues,
		Took:      time.Since(startTime).Milliseconds(),
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
