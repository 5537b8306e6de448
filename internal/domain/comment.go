package domain

import "time"

const MaxCommentLength = 1000

type Comment struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event"`
	AuthorID     uint      `json:"author"`
	ParentID     *uint     `json:"parent"`
	Content      string    `json:"content"`
	LikesCount   int64     `json:"likes_count"`
	RepliesCount int64     `json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c Comment) IsReply() bool {
	return c.ParentID != nil
}

const (
	LikeStatusLike   = "like"
	LikeStatusUnlike = "unlike"
)

type LikeResult struct {
	Status     string `json:"status"`
	LikesCount int64  `json:"likes_count"`
}
