package sandbox

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/handlers"
)

type messageRequest struct {
	Message string `json:"message"`
}

type directMessageRequest struct {
	UserID  int    `json:"user_id" validate:"required"`
	Message string `json:"message"`
}

func (s *Sandbox) receivedNotifications(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.received(currentUser(c).ID))
}

func (s *Sandbox) adminNotifications(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.customerMessages(currentUser(c).ID))
}

func (s *Sandbox) sentNotifications(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.sent(currentUser(c).ID))
}

func (s *Sandbox) deletedNotifications(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.trashedNotifications(currentUser(c).ID))
}

func (s *Sandbox) sendToAdmin(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		handlers.RespondError(c, s.logger, MapHTTPStatus(ErrEmptyMessage), ErrEmptyMessage)
		return
	}

	n := s.state.notifyAdmins(currentUser(c).ID, message)
	s.logger.Info("notification sent to administrators", "recipients", n)
	handlers.RespondMessage(c, http.StatusCreated, "Notification envoyée.")
}

func (s *Sandbox) sendToUser(c *gin.Context) {
	var req directMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if fields := fieldErrors(req); fields != nil {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		handlers.RespondError(c, s.logger, MapHTTPStatus(ErrEmptyMessage), ErrEmptyMessage)
		return
	}

	if err := s.state.notify(currentUser(c).ID, req.UserID, message); err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusCreated, "Notification envoyée.")
}

func (s *Sandbox) softDeleteNotification(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.softDeleteNotification(currentUser(c).ID, id)
	}
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusOK, "Notification déplacée dans la corbeille.")
}

func (s *Sandbox) restoreNotification(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.restoreNotification(currentUser(c).ID, id)
	}
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusOK, "Notification restaurée.")
}

func (s *Sandbox) purgeNotification(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = s.state.purgeNotification(currentUser(c).ID, id)
	}
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(c, http.StatusOK, "Notification supprimée définitivement.")
}

func (s *Sandbox) unreadCount(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, backend.UnreadCount{UnreadCount: s.state.unreadCount(currentUser(c).ID)})
}

func (s *Sandbox) markRead(c *gin.Context) {
	n := s.state.markRead(currentUser(c).ID)
	s.logger.Debug("notifications marked read", "count", n)
	handlers.RespondMessage(c, http.StatusOK, "Notifications marquées comme lues.")
}
