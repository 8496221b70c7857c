package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ds124wfegd/comment-board/internal/database"
	"github.com/ds124wfegd/comment-board/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	seqKey    = "comments:seq"
	byTimeKey = "comments:by_time"
)

// incrementLikesScript touches only an existing hash, so an unknown id stays absent.
var incrementLikesScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('HINCRBY', KEYS[1], 'likes', 1)
end
return 0
`)

var errNegativeWindow = errors.New("limit and offset must not be negative")

type commentRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewCommentRepository(client *redis.Client) database.CommentRepository {
	return &commentRepository{
		client: client,
		now:    time.Now,
	}
}

func commentKey(id int64) string {
	return fmt.Sprintf("comment:%d", id)
}

// timeMember pads the id so equal scores fall back to numeric id order.
func timeMember(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.client.ZCard(ctx, byTimeKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, nil
}

func (r *commentRepository) List(ctx context.Context, limit, offset int) ([]entity.Comment, error) {
	if limit < 0 || offset < 0 {
		return nil, errNegativeWindow
	}
	if limit == 0 {
		return []entity.Comment{}, nil
	}

	start := int64(offset)
	stop := start + int64(limit) - 1
	if stop < start {
		// окно выходит за int64: читаем до конца множества
		stop = -1
	}

	members, err := r.client.ZRevRange(ctx, byTimeKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	// Получаем комментарии по ID одним пайплайном
	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad comment member %q: %w", member, err)
		}
		cmds = append(cmds, pipe.HGetAll(ctx, commentKey(id)))
	}
	if len(cmds) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to load comments: %w", err)
		}
	}

	comments := make([]entity.Comment, 0, len(cmds))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		c, err := decodeComment(fields)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	id, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate comment id: %w", err)
	}

	created := r.now().UTC().Truncate(time.Microsecond)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, commentKey(id), map[string]any{
		"id":          id,
		"name":        comment.Name,
		"content":     comment.Content,
		"likes":       0,
		"create_time": created.UnixMicro(),
	})
	pipe.ZAdd(ctx, byTimeKey, redis.Z{Score: float64(created.UnixMicro()), Member: timeMember(id)})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID = id
	comment.Likes = 0
	comment.CreateTime = created
	return nil
}

func (r *commentRepository) IncrementLikes(ctx context.Context, id int64) error {
	if err := incrementLikesScript.Run(ctx, r.client, []string{commentKey(id)}).Err(); err != nil {
		return fmt.Errorf("failed to increment likes: %w", err)
	}
	return nil
}

func (r *commentRepository) GetLikes(ctx context.Context, id int64) (int64, error) {
	likes, err := r.client.HGet(ctx, commentKey(id), "likes").Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, entity.ErrCommentNotFound
		}
		return 0, fmt.Errorf("failed to get likes: %w", err)
	}
	return likes, nil
}

func (r *commentRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeComment(fields map[string]string) (entity.Comment, error) {
	var c entity.Comment
	var err error

	if c.ID, err = strconv.ParseInt(fields["id"], 10, 64); err != nil {
		return c, fmt.Errorf("bad comment id %q: %w", fields["id"], err)
	}
	if c.Likes, err = strconv.ParseInt(fields["likes"], 10, 64); err != nil {
		return c, fmt.Errorf("bad likes for comment %d: %w", c.ID, err)
	}
	micros, err := strconv.ParseInt(fields["create_time"], 10, 64)
	if err != nil {
		return c, fmt.Errorf("bad create_time for comment %d: %w", c.ID, err)
	}

	c.Name = fields["name"]
	c.Content = fields["content"]
	c.CreateTime = time.UnixMicro(micros).UTC()
	return c, nil
}
