package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ds124wfegd/comment-board/internal/database"
	"github.com/ds124wfegd/comment-board/internal/entity"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) database.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM comments`
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, nil
}

func (r *commentRepository) List(ctx context.Context, limit, offset int) ([]entity.Comment, error) {
	query := `
		SELECT id, name, content, likes, create_time
		FROM comments
		ORDER BY create_time DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Content, &c.Likes, &c.CreateTime); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (name, content)
		VALUES ($1, $2)
		RETURNING id, likes, create_time
	`

	err := r.db.QueryRowContext(ctx, query, comment.Name, comment.Content).
		Scan(&comment.ID, &comment.Likes, &comment.CreateTime)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) IncrementLikes(ctx context.Context, id int64) error {
	query := `UPDATE comments SET likes = likes + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment likes: %w", err)
	}
	return nil
}

func (r *commentRepository) GetLikes(ctx context.Context, id int64) (int64, error) {
	var likes int64
	query := `SELECT likes FROM comments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, entity.ErrCommentNotFound
		}
		return 0, fmt.Errorf("failed to get likes: %w", err)
	}
	return likes, nil
}

func (r *commentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
