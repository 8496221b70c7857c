package service

import (
	"context"
	"math"
	"math/big"
	"time"

	"github.com/ds124wfegd/comment-board/internal/database"
	"github.com/ds124wfegd/comment-board/internal/entity"
	"github.com/ds124wfegd/comment-board/internal/metrics"
)

type CommentServiceImpl struct {
	repo database.CommentRepository
	now  func() time.Time
}

func NewCommentService(repo database.CommentRepository) CommentService {
	return &CommentServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// ListComments returns one page, newest first. page and pageSize are used as given:
// the count and the page fetch are two separate store calls.
func (s *CommentServiceImpl) ListComments(ctx context.Context, page, pageSize int) (*entity.CommentsPage, error) {
	offset := pageOffset(page, pageSize)

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.List(ctx, pageSize, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	data := make([]entity.CommentView, 0, len(comments))
	for _, c := range comments {
		data = append(data, entity.NewCommentView(c, FormatTimeText(c.CreateTime, now)))
	}

	return &entity.CommentsPage{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Data:     data,
	}, nil
}

// pageOffset is (page-1)*pageSize saturated to the int range, so a huge page
// reads past the end instead of wrapping to a negative offset.
func pageOffset(page, pageSize int) int {
	offset := new(big.Int).Sub(big.NewInt(int64(page)), big.NewInt(1))
	offset.Mul(offset, big.NewInt(int64(pageSize)))

	switch {
	case offset.Cmp(big.NewInt(math.MaxInt)) > 0:
		return math.MaxInt
	case offset.Cmp(big.NewInt(math.MinInt)) < 0:
		return math.MinInt
	}
	return int(offset.Int64())
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, req entity.CreateCommentRequest) error {
	if req.Name == "" || req.Content == "" {
		return entity.ErrInvalidInput
	}

	comment := entity.Comment{
		Name:    req.Name,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, &comment); err != nil {
		return err
	}

	metrics.RecordCommentCreated()
	return nil
}

// LikeComment increments first and reads back second; an unknown id makes the
// increment a no-op and the read report entity.ErrCommentNotFound.
func (s *CommentServiceImpl) LikeComment(ctx context.Context, id int64) (int64, error) {
	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		return 0, err
	}

	likes, err := s.repo.GetLikes(ctx, id)
	if err != nil {
		return 0, err
	}

	metrics.RecordCommentLiked()
	return likes, nil
}

func (s *CommentServiceImpl) CheckStorage(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
