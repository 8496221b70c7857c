package service

import (
	"context"

	"github.com/ds124wfegd/comment-board/internal/entity"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 3
)

type CommentService interface {
	ListComments(ctx context.Context, page, pageSize int) (*entity.CommentsPage, error)
	CreateComment(ctx context.Context, req entity.CreateCommentRequest) error
	LikeComment(ctx context.Context, id int64) (int64, error)
	CheckStorage(ctx context.Context) error
}
