package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	notificationapp "github.com/trendlens/backend/internal/application/notification"
)

// NotificationHandler handles alert inbox API endpoints
type NotificationHandler struct {
	BaseHandler
	notifications *notificationapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
	}
}

// GetUnread godoc
// @Summary      List unread notifications
// @Tags         notifications
// @Produce      json
// @Param        user_id query string false "Recipient (defaults to the system inbox)"
// @Success      200 {object} dto.Response
// @Router       /notifications/unread [get]
func (h *NotificationHandler) GetUnread(c *gin.Context) {
	userID := c.Query("user_id")

	items, err := h.notifications.Unread(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GetUnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Param        user_id query string false "Recipient (defaults to the system inbox)"
// @Success      200 {object} dto.Response
// @Router       /notifications/unread/count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.Query("user_id")

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path int true "Notification ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "notification ID must be an integer")
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"id": id, "read": true})
}
