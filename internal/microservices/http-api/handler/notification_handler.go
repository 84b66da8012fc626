package handler

import (
	"net/http"

	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List returns the caller's notifications, newest first; ?unread=true keeps unread ones only
func (h *NotificationHandler) List(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var query dto.NotificationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(bindError(err))
		return
	}

	notifications, err := h.svc.List(c.Request.Context(), principal.UserID, query.Unread)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	count, err := h.svc.UnreadCount(c.Request.Context(), principal.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead marks a specific notification as read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	if err := h.svc.MarkAsRead(c.Request.Context(), principal.UserID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllAsRead marks all notifications as read for the user
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	updated, err := h.svc.MarkAllAsRead(c.Request.Context(), principal.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated, Message: "All notifications marked as read"})
}
