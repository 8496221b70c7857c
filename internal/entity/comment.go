package entity

import "time"

// Comment - строка таблицы comments
type Comment struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Likes      int64     `json:"likes"`
	CreateTime time.Time `json:"create_time"`
}

// CommentView is a Comment as returned by the list endpoint, with the derived relative age.
type CommentView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Likes      int64     `json:"likes"`
	CreateTime time.Time `json:"create_time"`
	TimeText   string    `json:"timeText"`
}

func NewCommentView(c Comment, timeText string) CommentView {
	return CommentView{
		ID:         c.ID,
		Name:       c.Name,
		Content:    c.Content,
		Likes:      c.Likes,
		CreateTime: c.CreateTime,
		TimeText:   timeText,
	}
}

type CreateCommentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type CommentsPage struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Data     []CommentView `json:"data"`
}

type LikeResponse struct {
	Likes int64 `json:"likes"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
