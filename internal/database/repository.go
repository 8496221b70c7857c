package database

import (
	"context"

	"github.com/ds124wfegd/comment-board/internal/entity"
)

// CommentRepository is the comment store. Every method is a single round-trip;
// callers get no isolation between two calls.
type CommentRepository interface {
	// Count returns the number of stored comments.
	Count(ctx context.Context) (int64, error)
	// List returns up to limit comments, newest first, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]entity.Comment, error)
	// Create inserts the comment and fills in the store-assigned fields.
	Create(ctx context.Context, comment *entity.Comment) error
	// IncrementLikes adds one like atomically. Unknown ids are a silent no-op.
	IncrementLikes(ctx context.Context, id int64) error
	// GetLikes returns the current like count or entity.ErrCommentNotFound.
	GetLikes(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}
