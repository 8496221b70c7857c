package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ds124wfegd/comment-board/internal/entity"
	"github.com/ds124wfegd/comment-board/internal/service"
	"github.com/ds124wfegd/comment-board/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.GET("", h.GetComments)
		comments.POST("", h.CreateComment)
		comments.POST("/:id/like", h.LikeComment)
	}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	page := queryInt(c, "page", service.DefaultPage)
	pageSize := queryInt(c, "pageSize", service.DefaultPageSize)

	response, err := h.service.ListComments(c.Request.Context(), page, pageSize)
	if err != nil {
		serverError(c, err, "list comments failed")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.MessageResponse{Message: msgIncompleteParams})
		return
	}

	err := h.service.CreateComment(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, entity.MessageResponse{Message: msgIncompleteParams})
		default:
			serverError(c, err, "create comment failed")
		}
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{Message: msgSuccess})
}

func (h *CommentHandler) LikeComment(c *gin.Context) {
	id, ok := leadingInt(c.Param("id"), 64)
	if !ok {
		// нечисловой id не может совпасть ни с одной строкой
		c.JSON(http.StatusNotFound, entity.MessageResponse{Message: msgNotFound})
		return
	}

	likes, err := h.service.LikeComment(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, entity.MessageResponse{Message: msgNotFound})
		default:
			serverError(c, err, "like comment failed")
		}
		return
	}

	c.JSON(http.StatusOK, entity.LikeResponse{Likes: likes})
}

func (h *CommentHandler) Health(c *gin.Context) {
	if err := h.service.CheckStorage(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("storage health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "storage": "disconnected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": "connected"})
}

// queryInt falls back to def when the parameter is absent, has no leading integer, or is zero.
func queryInt(c *gin.Context, key string, def int) int {
	value, ok := leadingInt(c.Query(key), strconv.IntSize)
	if !ok || value == 0 {
		return def
	}
	return int(value)
}

// leadingInt reads the decimal integer at the start of s: leading spaces and one
// sign are allowed, parsing stops at the first non-digit ("2abc" and "2.5" give 2).
// Values outside bitSize saturate.
func leadingInt(s string, bitSize int) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	// при ErrRange ParseInt уже вернул ближайшую границу
	value, err := strconv.ParseInt(s[:end], 10, bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return value, true
}

// serverError logs the cause and answers with a generic message.
func serverError(c *gin.Context, err error, msg string) {
	logrus.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error(msg)
	c.JSON(http.StatusInternalServerError, entity.MessageResponse{Message: msgServerError})
}
