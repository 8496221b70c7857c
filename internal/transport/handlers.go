package transport

import (
	"github.com/ds124wfegd/comment-board/internal/service"
)

const (
	msgSuccess          = "success"
	msgIncompleteParams = "incomplete parameters"
	msgNotFound         = "not found"
	msgServerError      = "server error"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}
